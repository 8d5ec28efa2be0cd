package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"boothq/internal/certificate"
	"boothq/internal/models"
	"boothq/internal/store"
)

type studentRegisterRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
	School    string `json:"school"`
	Grade     int    `json:"grade"`
	Class     int    `json:"class"`
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

func (h *Handler) handleStudentRegister(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req studentRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.School = strings.TrimSpace(req.School)
	req.Name = strings.TrimSpace(req.Name)
	if req.StudentID == "" || req.Password == "" || req.School == "" || req.Name == "" {
		writeFail(w, http.StatusBadRequest, "id, password, school, and name are required")
		return
	}
	if req.Grade <= 0 || req.Class <= 0 || req.Number <= 0 {
		writeFail(w, http.StatusBadRequest, "grade, class, and number must be positive")
		return
	}

	student, err := h.store.CreateStudent(r.Context(), models.Student{
		StudentID: req.StudentID,
		Password:  req.Password,
		Identity: models.Identity{
			School: req.School,
			Grade:  req.Grade,
			Class:  req.Class,
			Number: req.Number,
			Name:   req.Name,
		}.Key(),
		Phone: strings.TrimSpace(req.Phone),
	})
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Student models.Student `json:"student"`
	}{response{OK: true, Message: "account created"}, student})
}

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

func (h *Handler) handleStudentLogin(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	student, err := h.store.GetStudentByLogin(r.Context(), strings.TrimSpace(req.ID), req.Password)
	if err != nil {
		failFor(w, err)
		return
	}
	if err := h.startSession(w, r, store.SessionStudent, student.ID); err != nil {
		writeFail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Student models.Student `json:"student"`
	}{response{OK: true, Message: "logged in"}, student})
}

type checkIDRequest struct {
	ID string `json:"id"`
}

func (h *Handler) handleStudentCheckID(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req checkIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	taken, err := h.store.StudentIDTaken(r.Context(), strings.TrimSpace(req.ID))
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Taken bool `json:"taken"`
	}{response{OK: true}, taken})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	h.endSession(w, r)
	writeOK(w, "logged out")
}

type identityRequest struct {
	School string `json:"school"`
	Grade  int    `json:"grade"`
	Class  int    `json:"class"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

func (req identityRequest) identity() models.Identity {
	return models.Identity{
		School: req.School,
		Grade:  req.Grade,
		Class:  req.Class,
		Number: req.Number,
		Name:   req.Name,
	}.Key()
}

func (req identityRequest) valid() bool {
	id := req.identity()
	return id.School != "" && id.Name != "" && id.Grade > 0 && id.Class > 0 && id.Number > 0
}

type checkInRequest struct {
	identityRequest
	Booth   string `json:"booth"`
	Comment string `json:"comment"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req checkInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Booth = strings.TrimSpace(req.Booth)
	if !req.valid() || req.Booth == "" {
		writeFail(w, http.StatusBadRequest, "student identity and booth are required")
		return
	}

	checkin, err := h.store.CreateCheckIn(r.Context(), models.CheckIn{
		Identity: req.identity(),
		Booth:    req.Booth,
		Comment:  strings.TrimSpace(req.Comment),
	})
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		CheckIn models.CheckIn `json:"checkin"`
	}{response{OK: true, Message: fmt.Sprintf("checked in at %s", checkin.Booth)}, checkin})
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req identityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.valid() {
		writeFail(w, http.StatusBadRequest, "student identity is required")
		return
	}
	identity := req.identity()

	checkins, err := h.store.ListCheckInsByIdentity(r.Context(), identity)
	if err != nil {
		failFor(w, err)
		return
	}
	eligibility, err := h.certs.ComputeEligibility(r.Context(), identity)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		CheckIns    []models.CheckIn `json:"checkins"`
		Eligible    bool             `json:"eligible"`
		BoothCount  int              `json:"booth_count"`
		MinRequired int              `json:"min_required"`
	}{response{OK: true}, checkins, eligibility.Eligible, eligibility.BoothCount, certificate.MinBooths})
}

func (h *Handler) handleCertificateIssue(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req identityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.valid() {
		writeFail(w, http.StatusBadRequest, "student identity is required")
		return
	}

	result, err := h.certs.Issue(r.Context(), req.identity())
	if err != nil {
		failFor(w, err)
		return
	}
	if !result.Eligible {
		writeJSON(w, http.StatusOK, struct {
			response
			BoothCount int `json:"booth_count"`
		}{response{OK: false, Message: fmt.Sprintf("%d booths visited, %d required", result.BoothCount, certificate.MinBooths)}, result.BoothCount})
		return
	}
	message := "certificate issued"
	if result.AlreadyIssued {
		message = "certificate was already issued"
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Certificate models.Certificate `json:"certificate"`
	}{response{OK: true, Message: message}, result.Certificate})
}

func (h *Handler) handleCertificatePDF(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req identityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.valid() {
		writeFail(w, http.StatusBadRequest, "student identity is required")
		return
	}

	result, err := h.certs.Issue(r.Context(), req.identity())
	if err != nil {
		failFor(w, err)
		return
	}
	if !result.Eligible {
		writeJSON(w, http.StatusOK, struct {
			response
			BoothCount int `json:"booth_count"`
		}{response{OK: false, Message: fmt.Sprintf("%d booths visited, %d required", result.BoothCount, certificate.MinBooths)}, result.BoothCount})
		return
	}
	h.streamCertificatePDF(w, r, result.Certificate)
}
