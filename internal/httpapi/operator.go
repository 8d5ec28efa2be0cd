package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"boothq/internal/models"
	"boothq/internal/store"
	"boothq/internal/upload"
)

type operatorRegisterRequest struct {
	OperatorID string `json:"operator_id"`
	Password   string `json:"password"`
	School     string `json:"school"`
	ClubName   string `json:"club_name"`
	BoothTopic string `json:"booth_topic"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func (h *Handler) handleOperatorRegister(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req operatorRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.OperatorID = strings.TrimSpace(req.OperatorID)
	req.School = strings.TrimSpace(req.School)
	req.ClubName = strings.TrimSpace(req.ClubName)
	req.Name = strings.TrimSpace(req.Name)
	if req.OperatorID == "" || req.Password == "" || req.School == "" || req.ClubName == "" || req.Name == "" {
		writeFail(w, http.StatusBadRequest, "id, password, school, club name, and name are required")
		return
	}

	operator, err := h.store.CreateOperator(r.Context(), models.Operator{
		OperatorID: req.OperatorID,
		Password:   req.Password,
		School:     req.School,
		ClubName:   req.ClubName,
		BoothTopic: strings.TrimSpace(req.BoothTopic),
		Name:       req.Name,
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.TrimSpace(req.Email),
		Active:     true,
	})
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Operator models.Operator `json:"operator"`
	}{response{OK: true, Message: "operator account created"}, operator})
}

func (h *Handler) handleOperatorLogin(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	operator, err := h.store.GetOperatorByLogin(r.Context(), strings.TrimSpace(req.ID), req.Password)
	if err != nil {
		failFor(w, err)
		return
	}
	if err := h.startSession(w, r, store.SessionOperator, operator.ID); err != nil {
		writeFail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Operator models.Operator `json:"operator"`
	}{response{OK: true, Message: "logged in"}, operator})
}

func (h *Handler) handleOperatorCheckID(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req checkIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	taken, err := h.store.OperatorIDTaken(r.Context(), strings.TrimSpace(req.ID))
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Taken bool `json:"taken"`
	}{response{OK: true}, taken})
}

func (h *Handler) handleBoothList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	booths, err := h.store.ListActiveBooths(r.Context())
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Booths []store.BoothListing `json:"booths"`
	}{response{OK: true}, booths})
}

// handleBoothCreate accepts a multipart form so the booth's intro PDF
// can ride along with the fields.
func (h *Handler) handleBoothCreate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	session, ok := h.requireOperator(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeFail(w, http.StatusBadRequest, "booth name is required")
		return
	}

	booth := models.Booth{
		Name:        name,
		Location:    strings.TrimSpace(r.FormValue("location")),
		Description: strings.TrimSpace(r.FormValue("description")),
		OperatorID:  session.SubjectID,
		Active:      true,
	}
	if path, ok := h.saveBoothPDF(w, r); !ok {
		return
	} else if path != "" {
		booth.PDFPath = path
	}

	created, err := h.store.CreateBooth(r.Context(), booth)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Booth models.Booth `json:"booth"`
	}{response{OK: true, Message: "booth created"}, created})
}

func (h *Handler) handleBoothUpdate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	session, ok := h.requireOperator(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	boothID, err := strconv.ParseInt(r.FormValue("booth_id"), 10, 64)
	if err != nil || boothID <= 0 {
		writeFail(w, http.StatusBadRequest, "booth_id is required")
		return
	}

	booth, err := h.store.GetBooth(r.Context(), boothID)
	if err != nil {
		failFor(w, err)
		return
	}
	if booth.OperatorID != session.SubjectID {
		writeFail(w, http.StatusUnauthorized, "this booth belongs to another operator")
		return
	}

	if name := strings.TrimSpace(r.FormValue("name")); name != "" {
		booth.Name = name
	}
	if location := strings.TrimSpace(r.FormValue("location")); location != "" {
		booth.Location = location
	}
	if description := strings.TrimSpace(r.FormValue("description")); description != "" {
		booth.Description = description
	}
	if path, ok := h.saveBoothPDF(w, r); !ok {
		return
	} else if path != "" {
		booth.PDFPath = path
	}

	if err := h.store.UpdateBooth(r.Context(), booth); err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Booth models.Booth `json:"booth"`
	}{response{OK: true, Message: "booth updated"}, booth})
}

// saveBoothPDF stores the optional "pdf" part and returns its path. The
// bool is false when the upload was present but invalid and a response
// was already written.
func (h *Handler) saveBoothPDF(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, header, err := r.FormFile("pdf")
	if err != nil {
		return "", true
	}
	defer file.Close()
	path, err := upload.Save(h.opts.UploadDir, header.Filename, file)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "could not store the uploaded file")
		return "", false
	}
	return path, true
}

func (h *Handler) handleBoothMine(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	session, ok := h.requireOperator(w, r)
	if !ok {
		return
	}
	booths, err := h.store.ListBoothsByOperator(r.Context(), session.SubjectID)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Booths []models.Booth `json:"booths"`
	}{response{OK: true}, booths})
}
