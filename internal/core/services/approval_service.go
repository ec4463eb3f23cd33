package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sitebooks/site_books_app/internal/apperrors"
	"github.com/sitebooks/site_books_app/internal/core/domain"
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
)

// applyFunc executes an approved change on behalf of the reviewer.
type applyFunc func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error

// approvalService queues writes behind a review step. Each (entity, op) pair
// maps to one typed apply function; an unknown pair is rejected at submit
// time rather than discovered at approval.
type approvalService struct {
	BaseService
	requestRepo portsrepo.ChangeRequestRepositoryFacade
	registry    map[domain.EntityKind]map[domain.ChangeOp]applyFunc
}

// NewApprovalService creates a new ApprovalService wired to the posting and
// master data services that execute approved changes.
func NewApprovalService(requestRepo portsrepo.ChangeRequestRepositoryFacade, posting portssvc.PostingSvcFacade, masterData portssvc.MasterDataSvcFacade) portssvc.ApprovalSvcFacade {
	s := &approvalService{
		requestRepo: requestRepo,
		registry:    make(map[domain.EntityKind]map[domain.ChangeOp]applyFunc),
	}

	s.register(domain.EntityPurchase, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreatePurchaseRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid purchase patch: %w", apperrors.ErrValidation, err)
		}
		_, err := posting.CreatePurchase(ctx, req, cr.RequestedBy)
		return err
	})
	s.register(domain.EntityPurchase, domain.OpVoid, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		return posting.VoidPurchase(ctx, cr.EntityID, reviewerID)
	})

	s.register(domain.EntityBankPayment, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreateBankPaymentRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid bank payment patch: %w", apperrors.ErrValidation, err)
		}
		_, err := posting.CreateBankPayment(ctx, req, cr.RequestedBy)
		return err
	})
	s.register(domain.EntityBankPayment, domain.OpVoid, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		return posting.VoidBankPayment(ctx, cr.EntityID, reviewerID)
	})

	s.register(domain.EntityCashPayment, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreateCashPaymentRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid cash payment patch: %w", apperrors.ErrValidation, err)
		}
		_, err := posting.CreateCashPayment(ctx, req, cr.RequestedBy)
		return err
	})
	s.register(domain.EntityCashPayment, domain.OpVoid, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		return posting.VoidCashPayment(ctx, cr.EntityID, reviewerID)
	})

	s.register(domain.EntitySalesInvoice, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreateSalesInvoiceRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid invoice patch: %w", apperrors.ErrValidation, err)
		}
		_, err := posting.CreateSalesInvoice(ctx, req, cr.RequestedBy)
		return err
	})
	s.register(domain.EntitySalesInvoice, domain.OpVoid, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		return posting.VoidSalesInvoice(ctx, cr.EntityID, reviewerID)
	})

	s.register(domain.EntityPlotSale, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreatePlotSaleRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid plot sale patch: %w", apperrors.ErrValidation, err)
		}
		_, err := posting.CreatePlotSale(ctx, req, cr.RequestedBy)
		return err
	})
	s.register(domain.EntityPlotSale, domain.OpVoid, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		return posting.VoidPlotSale(ctx, cr.EntityID, reviewerID)
	})

	s.register(domain.EntitySupplier, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreateSupplierRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid supplier patch: %w", apperrors.ErrValidation, err)
		}
		_, err := masterData.CreateSupplier(ctx, req, cr.RequestedBy)
		return err
	})
	s.register(domain.EntityCustomer, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreateCustomerRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid customer patch: %w", apperrors.ErrValidation, err)
		}
		_, err := masterData.CreateCustomer(ctx, req, cr.RequestedBy)
		return err
	})
	s.register(domain.EntityProject, domain.OpCreate, func(ctx context.Context, cr *domain.ChangeRequest, reviewerID string) error {
		var req dto.CreateProjectRequest
		if err := json.Unmarshal(cr.Patch, &req); err != nil {
			return fmt.Errorf("%w: invalid project patch: %w", apperrors.ErrValidation, err)
		}
		_, err := masterData.CreateProject(ctx, req, cr.RequestedBy)
		return err
	})

	return s
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

func (s *approvalService) register(entity domain.EntityKind, op domain.ChangeOp, fn applyFunc) {
	if s.registry[entity] == nil {
		s.registry[entity] = make(map[domain.ChangeOp]applyFunc)
	}
	s.registry[entity][op] = fn
}

func (s *approvalService) lookup(entity domain.EntityKind, op domain.ChangeOp) (applyFunc, error) {
	ops, ok := s.registry[entity]
	if !ok {
		return nil, fmt.Errorf("%w: unknown entity kind %q", apperrors.ErrValidation, entity)
	}
	fn, ok := ops[op]
	if !ok {
		return nil, fmt.Errorf("%w: operation %q is not supported for entity %q", apperrors.ErrValidation, op, entity)
	}
	return fn, nil
}

// SubmitChangeRequest queues a change for review. The (entity, op) pair is
// validated against the registry up front so the queue never holds requests
// nothing can apply.
func (s *approvalService) SubmitChangeRequest(ctx context.Context, req dto.SubmitChangeRequest, requesterID string) (*domain.ChangeRequest, error) {
	if _, err := s.lookup(req.Entity, req.Op); err != nil {
		return nil, err
	}
	if req.Op == domain.OpVoid && req.EntityID == "" {
		return nil, fmt.Errorf("%w: void request requires an entity ID", apperrors.ErrValidation)
	}
	if req.Op == domain.OpCreate && len(req.Patch) == 0 {
		return nil, fmt.Errorf("%w: create request requires a patch body", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	cr := domain.ChangeRequest{
		RequestID:   uuid.NewString(),
		Entity:      req.Entity,
		Op:          req.Op,
		EntityID:    req.EntityID,
		Patch:       req.Patch,
		Status:      domain.RequestPending,
		RequestedBy: requesterID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}
	if err := s.requestRepo.CreateChangeRequest(ctx, cr); err != nil {
		s.LogError(ctx, err, "Failed to queue change request",
			slog.String("entity", string(req.Entity)), slog.String("op", string(req.Op)))
		return nil, fmt.Errorf("failed to queue change request: %w", err)
	}

	s.LogInfo(ctx, "Change request queued",
		slog.String("request_id", cr.RequestID),
		slog.String("entity", string(req.Entity)),
		slog.String("op", string(req.Op)))
	return &cr, nil
}

// GetChangeRequestByID retrieves one change request.
func (s *approvalService) GetChangeRequestByID(ctx context.Context, requestID string) (*domain.ChangeRequest, error) {
	cr, err := s.requestRepo.FindChangeRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find change request %s: %w", requestID, err)
	}
	return cr, nil
}

// ListChangeRequests retrieves a page of change requests, optionally filtered
// by status.
func (s *approvalService) ListChangeRequests(ctx context.Context, params dto.ListChangeRequestsParams) (*dto.ListChangeRequestsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	token := ""
	if params.NextToken != nil {
		token = *params.NextToken
	}
	requests, next, err := s.requestRepo.ListChangeRequests(ctx, domain.RequestStatus(params.Status), limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list change requests")
		return nil, fmt.Errorf("failed to list change requests: %w", err)
	}
	resp := &dto.ListChangeRequestsResponse{
		Requests: dto.ToChangeRequestResponses(requests),
	}
	if next != "" {
		resp.NextToken = &next
	}
	return resp, nil
}

// ApproveChangeRequest applies a pending request, then marks it approved. A
// request that fails to apply stays pending so the failure can be fixed and
// retried; one already reviewed yields ErrConflict.
func (s *approvalService) ApproveChangeRequest(ctx context.Context, requestID string, reviewerID string, note string) (*domain.ChangeRequest, error) {
	cr, err := s.requestRepo.FindChangeRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find change request %s: %w", requestID, err)
	}
	if cr.Status != domain.RequestPending {
		return nil, fmt.Errorf("%w: change request %s is already %s", apperrors.ErrConflict, requestID, cr.Status)
	}

	fn, err := s.lookup(cr.Entity, cr.Op)
	if err != nil {
		return nil, err
	}
	if err := fn(ctx, cr, reviewerID); err != nil {
		s.LogError(ctx, err, "Failed to apply approved change",
			slog.String("request_id", requestID),
			slog.String("entity", string(cr.Entity)),
			slog.String("op", string(cr.Op)))
		return nil, fmt.Errorf("failed to apply change request %s: %w", requestID, err)
	}

	now := time.Now().UTC()
	if err := s.requestRepo.MarkReviewed(ctx, requestID, domain.RequestApproved, reviewerID, note, now); err != nil {
		s.LogError(ctx, err, "Change applied but review mark failed", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to mark change request %s approved: %w", requestID, err)
	}

	cr.Status = domain.RequestApproved
	cr.ReviewedBy = reviewerID
	cr.ReviewNote = note
	cr.ReviewedAt = &now
	s.LogInfo(ctx, "Change request approved",
		slog.String("request_id", requestID),
		slog.String("entity", string(cr.Entity)),
		slog.String("op", string(cr.Op)))
	return cr, nil
}

// RejectChangeRequest marks a pending request rejected without applying it.
func (s *approvalService) RejectChangeRequest(ctx context.Context, requestID string, reviewerID string, note string) (*domain.ChangeRequest, error) {
	cr, err := s.requestRepo.FindChangeRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find change request %s: %w", requestID, err)
	}
	if cr.Status != domain.RequestPending {
		return nil, fmt.Errorf("%w: change request %s is already %s", apperrors.ErrConflict, requestID, cr.Status)
	}

	now := time.Now().UTC()
	if err := s.requestRepo.MarkReviewed(ctx, requestID, domain.RequestRejected, reviewerID, note, now); err != nil {
		return nil, fmt.Errorf("failed to mark change request %s rejected: %w", requestID, err)
	}

	cr.Status = domain.RequestRejected
	cr.ReviewedBy = reviewerID
	cr.ReviewNote = note
	cr.ReviewedAt = &now
	s.LogInfo(ctx, "Change request rejected", slog.String("request_id", requestID))
	return cr, nil
}
