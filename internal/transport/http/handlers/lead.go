package handlers

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadcapture/lead-service/internal/application/lead"
	"github.com/leadcapture/lead-service/internal/domain"
	"github.com/leadcapture/lead-service/internal/metrics"
	"github.com/leadcapture/lead-service/internal/transport/http/dto"
	"github.com/leadcapture/lead-service/internal/transport/http/response"
	"github.com/leadcapture/lead-service/internal/transport/http/validation"
)

// LeadService is what the HTTP layer needs from the lead application service.
type LeadService interface {
	Create(ctx context.Context, in lead.CreateInput) (domain.Lead, error)
	GetByID(ctx context.Context, id string) (domain.Lead, error)
	List(ctx context.Context, page lead.PageRequest, f lead.Filters) (lead.ListResult, error)
	Update(ctx context.Context, id string, u domain.LeadUpdate) (domain.Lead, error)
	Deactivate(ctx context.Context, id string) (domain.Lead, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (lead.Stats, error)
}

type LeadHandler struct {
	svc     LeadService
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewLeadHandler(svc LeadService, m *metrics.Metrics) *LeadHandler {
	return &LeadHandler{svc: svc, metrics: m, now: time.Now}
}

// Create handles the public submission form. Submission metadata comes from
// the request, never from the body.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLeadRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	in, err := req.ToInput(h.now())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	in.SubmissionInfo = submissionInfo(r)

	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.LeadsCreated.Inc()
	}
	response.Created(w, r, "lead created", dto.NewLeadView(created))
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	res, err := h.svc.List(r.Context(), q.ToPage(), q.ToFilters())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, r, dto.NewLeadListData(res))
}

func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, r, dto.NewLeadView(l))
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateLeadRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := req.ToUpdate(h.now())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OKMessage(w, r, "lead updated", dto.NewLeadView(updated))
}

// Deactivate soft-deletes a lead; the record stays queryable.
func (h *LeadHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Deactivate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OKMessage(w, r, "lead deactivated", dto.NewLeadView(l))
}

// DeletePermanent removes a lead for good. Admin only, enforced in the router.
func (h *LeadHandler) DeletePermanent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OKMessage(w, r, "lead permanently deleted", nil)
}

func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Stats(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, r, dto.NewLeadStatsData(s))
}

func parseListQuery(r *http.Request) dto.ListLeadsQuery {
	q := r.URL.Query()

	out := dto.ListLeadsQuery{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Search:    strings.TrimSpace(q.Get("search")),
	}
	out.Page, _ = strconv.Atoi(q.Get("page"))
	out.Limit, _ = strconv.Atoi(q.Get("limit"))

	if raw := q.Get("isActive"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			out.IsActive = &b
		}
	}
	return out
}

func submissionInfo(r *http.Request) domain.SubmissionInfo {
	return domain.SubmissionInfo{
		IPAddress: requestIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
}

// requestIP prefers the first X-Forwarded-For hop over the raw remote address.
func requestIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
