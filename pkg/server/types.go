package server

import (
	"github.com/legalease-ai/backend/pkg/retrieval"
	"github.com/legalease-ai/backend/pkg/risk"
)

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type RisksResponse struct {
	Risks []risk.Item `json:"risks"`
}

type QAResponse struct {
	Answer    string              `json:"answer"`
	Citations []retrieval.Context `json:"citations"`
}
