package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/model"
)

type photoItemsRequest struct {
	PhotoID     string               `json:"photo_id"`
	UserID      string               `json:"user_id"`
	TakenAt     time.Time            `json:"taken_at"`
	StoragePath string               `json:"storage_path,omitempty"`
	OCRText     string               `json:"ocr_text,omitempty"`
	Items       []model.RawDetection `json:"items"`
}

type dayTotalResponse struct {
	UserID string       `json:"user_id"`
	Date   model.Day    `json:"date"`
	Counts model.Counts `json:"counts"`
}

type monthTotalResponse struct {
	UserID string              `json:"user_id"`
	Month  model.Month         `json:"month"`
	Counts model.Counts        `json:"counts"`
	Flags  []model.PatternFlag `json:"pattern_flags"`
}

type photoItemsResponse struct {
	PhotoID string             `json:"photo_id"`
	Items   []classifiedItem   `json:"items"`
	Day     dayTotalResponse   `json:"day"`
	Month   monthTotalResponse `json:"month"`
}

type classifiedItem struct {
	RawLabel string         `json:"raw_label"`
	Category model.Category `json:"category"`
}

// handlePhotoItems runs the full pipeline for one photo's vision output
// and returns the classified items plus the updated day and month totals.
func (s *Server) handlePhotoItems(w http.ResponseWriter, r *http.Request) {
	var req photoItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	if req.PhotoID == "" || req.UserID == "" || req.TakenAt.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "photo_id, user_id and taken_at are required"})
		return
	}

	photo := &model.Photo{
		ID:          req.PhotoID,
		UserID:      req.UserID,
		TakenAt:     req.TakenAt,
		StoragePath: req.StoragePath,
	}
	output := model.VisionOutput{
		PhotoID: req.PhotoID,
		OCRText: req.OCRText,
		Items:   req.Items,
	}

	result, err := s.engine.ProcessPhotoItems(r.Context(), photo, output)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]classifiedItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, classifiedItem{
			RawLabel: item.Detection.RawLabel,
			Category: item.Category,
		})
	}
	writeJSON(w, http.StatusOK, photoItemsResponse{
		PhotoID: req.PhotoID,
		Items:   items,
		Day: dayTotalResponse{
			UserID: result.DayTotal.UserID,
			Date:   result.DayTotal.Date,
			Counts: result.DayTotal.Counts,
		},
		Month: monthTotalResponse{
			UserID: result.MonthTotal.UserID,
			Month:  result.MonthTotal.Month,
			Counts: result.MonthTotal.Counts,
			Flags:  result.MonthTotal.Flags,
		},
	})
}

type summarizeDayRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

// handleSummarizeDay ensures the day total row exists and returns it. Day
// totals accumulate on upload; this endpoint covers callers that want the
// row before any items arrive.
func (s *Server) handleSummarizeDay(w http.ResponseWriter, r *http.Request) {
	var req summarizeDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	date, err := model.ParseDay(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "user_id is required"})
		return
	}

	total, err := s.engine.EnsureDay(r.Context(), req.UserID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dayTotalResponse{
		UserID: total.UserID,
		Date:   total.Date,
		Counts: total.Counts,
	})
}

type summarizeMonthRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`
}

func (s *Server) handleSummarizeMonth(w http.ResponseWriter, r *http.Request) {
	var req summarizeMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	month, err := model.ParseMonth(req.Month)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "user_id is required"})
		return
	}

	total, err := s.engine.RecomputeMonth(r.Context(), req.UserID, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, monthTotalResponse{
		UserID: total.UserID,
		Month:  total.Month,
		Counts: total.Counts,
		Flags:  total.Flags,
	})
}

type generateGoalsRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`
}

type goalSetResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Month     model.Month  `json:"month"`
	Goals     []model.Goal `json:"goals"`
	CreatedAt time.Time    `json:"created_at"`
}

type emptyGoalsResponse struct {
	Goals   []model.Goal `json:"goals"`
	Message string       `json:"message"`
}

// handleGenerateGoals regenerates the goal set for a month. A month with
// no logged items is not an error: it yields an empty set and a message.
func (s *Server) handleGenerateGoals(w http.ResponseWriter, r *http.Request) {
	var req generateGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	month, err := model.ParseMonth(req.Month)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "user_id is required"})
		return
	}

	set, err := s.engine.GenerateGoals(r.Context(), req.UserID, month)
	if errors.Is(err, common.ErrNoItems) {
		writeJSON(w, http.StatusOK, emptyGoalsResponse{
			Goals:   []model.Goal{},
			Message: "no items logged this month yet",
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goalSetResponse{
		ID:        set.ID,
		UserID:    set.UserID,
		Month:     set.Month,
		Goals:     set.Goals,
		CreatedAt: set.CreatedAt,
	})
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := model.ParseDay(vars["date"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	total, err := s.store.GetDayTotal(r.Context(), vars["id"], date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dayTotalResponse{
		UserID: total.UserID,
		Date:   total.Date,
		Counts: total.Counts,
	})
}

func (s *Server) handleGetMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	month, err := model.ParseMonth(vars["ym"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	total, err := s.store.GetMonthTotal(r.Context(), vars["id"], month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, monthTotalResponse{
		UserID: total.UserID,
		Month:  total.Month,
		Counts: total.Counts,
		Flags:  total.Flags,
	})
}

func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	month, err := model.ParseMonth(vars["ym"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	set, err := s.store.GetGoalSet(r.Context(), vars["id"], month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goalSetResponse{
		ID:        set.ID,
		UserID:    set.UserID,
		Month:     set.Month,
		Goals:     set.Goals,
		CreatedAt: set.CreatedAt,
	})
}
