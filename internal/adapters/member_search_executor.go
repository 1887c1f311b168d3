// Package adapters wires cross-module dependencies without letting the
// bounded contexts import each other.
package adapters

import (
	"context"

	"github.com/google/uuid"

	memberservice "membercare_backend/internal/members/service"
	membertransport "membercare_backend/internal/members/transport"
	savedsearchservice "membercare_backend/internal/savedsearch/service"
	"membercare_backend/internal/search"
)

// MemberSearchExecutor adapts the member advanced search to the
// executor port the saved search module depends on.
type MemberSearchExecutor struct {
	members *memberservice.Service
}

// NewMemberSearchExecutor creates the adapter.
func NewMemberSearchExecutor(members *memberservice.Service) *MemberSearchExecutor {
	return &MemberSearchExecutor{members: members}
}

// Execute runs the filter expression through the member search service.
func (a *MemberSearchExecutor) Execute(ctx context.Context, churchID uuid.UUID, req search.Request, page, pageSize int) (savedsearchservice.ExecutionResult, error) {
	resp, err := a.members.AdvancedSearch(ctx, churchID, membertransport.AdvancedSearchRequest{
		Request:  req,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return savedsearchservice.ExecutionResult{}, err
	}
	return savedsearchservice.ExecutionResult{
		Payload: resp,
		Total:   resp.Members.Total,
	}, nil
}

var _ savedsearchservice.Executor = (*MemberSearchExecutor)(nil)
