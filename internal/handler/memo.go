package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cympfh/shanghai/internal/handler/dto"
	"github.com/cympfh/shanghai/internal/journal"
	"github.com/cympfh/shanghai/internal/ledger"
	"github.com/cympfh/shanghai/internal/model"
)

// MemoHandler handles journal entry operations.
type MemoHandler struct {
	svc      *ledger.Service
	logger   *slog.Logger
	basePath string
}

// NewMemoHandler creates a new MemoHandler. basePath is the URL prefix
// the app is mounted under, used for post-submit redirects.
func NewMemoHandler(svc *ledger.Service, logger *slog.Logger, basePath string) *MemoHandler {
	return &MemoHandler{
		svc:      svc,
		logger:   logger,
		basePath: basePath,
	}
}

// Create handles POST {base}/api/v1/entries.
func (h *MemoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	memo, err := h.svc.Post(r.Context(), postInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("memo_posted",
		"memo_type", string(memo.Type),
		"from_account", memo.FromAccount,
	)

	writeJSON(w, http.StatusCreated, dto.ToMemoResponse(memo))
}

// List handles GET {base}/api/v1/entries.
// By default canceled entries and cancel memos are included with a
// canceled flag; pass visible_only=true for the dashboard view.
func (h *MemoHandler) List(w http.ResponseWriter, r *http.Request) {
	visibleOnly := r.URL.Query().Get("visible_only") == "true"

	if visibleOnly {
		history, err := h.svc.History(r.Context())
		if err != nil {
			h.handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.ToEntryListResponse(history, nil))
		return
	}

	entries, err := h.svc.Entries(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEntryListResponse(entries, ledger.CanceledSet(entries)))
}

// Summary handles GET {base}/api/v1/summary.
func (h *MemoHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSummaryResponse(summary))
}

// SubmitForm handles POST {base}/memos from the dashboard form and
// redirects back to the dashboard.
func (h *MemoHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form body")
		return
	}

	input := ledger.PostInput{
		Type:        model.MemoType(r.PostForm.Get("memo_type")),
		FromAccount: r.PostForm.Get("from_account"),
		ToAccounts:  r.PostForm["to_account"],
		Note:        strings.TrimSpace(r.PostForm.Get("note")),
	}

	if raw := r.PostForm.Get("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a number")
			return
		}
		input.Amount = &amount
	}

	if raw := r.PostForm.Get("cancel_id"); raw != "" {
		cancelID, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_CANCEL_ID", "Cancel ID must be an integer")
			return
		}
		input.CancelID = &cancelID
	}

	memo, err := h.svc.Post(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("memo_posted",
		"memo_type", string(memo.Type),
		"from_account", memo.FromAccount,
		"via", "form",
	)

	http.Redirect(w, r, h.basePath+"/", http.StatusSeeOther)
}

func postInput(req dto.CreateMemoRequest) ledger.PostInput {
	input := ledger.PostInput{
		Type:        model.MemoType(req.MemoType),
		FromAccount: req.FromAccount,
		Amount:      req.Amount,
		CancelID:    req.CancelID,
		Note:        req.Note,
	}
	if req.ToAccount != "" {
		for _, acc := range strings.Split(req.ToAccount, ",") {
			if trimmed := strings.TrimSpace(acc); trimmed != "" {
				input.ToAccounts = append(input.ToAccounts, trimmed)
			}
		}
	}
	return input
}

// handleServiceError maps service errors to HTTP responses.
func (h *MemoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidMemo):
		h.writeError(w, http.StatusBadRequest, "INVALID_MEMO", err.Error())
	case errors.Is(err, journal.ErrUnavailable):
		h.writeError(w, http.StatusBadGateway, "JOURNAL_UNAVAILABLE", "Journal backend unreachable")
	case errors.Is(err, journal.ErrUpstreamStatus):
		h.writeError(w, http.StatusBadGateway, "JOURNAL_ERROR", "Journal backend error")
	default:
		h.logger.Error("unhandled service error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}

func (h *MemoHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, Code: code})
}
