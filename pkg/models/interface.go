package models

import "context"

// Agent is the model-call collaborator: single-turn text generation with an
// optional system instruction. Calls may take seconds and carry no
// determinism guarantees.
type Agent interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}
