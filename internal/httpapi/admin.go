package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"boothq/internal/certificate"
	"boothq/internal/export"
	"boothq/internal/models"
	"boothq/internal/qr"
	"boothq/internal/store"
	"boothq/internal/upload"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req adminLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.opts.AdminPassword == "" || req.Password != h.opts.AdminPassword {
		writeFail(w, http.StatusUnauthorized, "wrong admin password")
		return
	}
	if err := h.startSession(w, r, store.SessionAdmin, 0); err != nil {
		writeFail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeOK(w, "admin logged in")
}

type adminStudentRequest struct {
	ID        int64  `json:"id"`
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
	School    string `json:"school"`
	Grade     int    `json:"grade"`
	Class     int    `json:"class"`
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

func (h *Handler) handleAdminStudents(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		students, err := h.store.ListStudents(r.Context())
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			Students []models.Student `json:"students"`
		}{response{OK: true}, students})
	case http.MethodPost:
		var req adminStudentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		student := models.Student{
			ID:        req.ID,
			StudentID: strings.TrimSpace(req.StudentID),
			Password:  req.Password,
			Identity: models.Identity{
				School: req.School,
				Grade:  req.Grade,
				Class:  req.Class,
				Number: req.Number,
				Name:   req.Name,
			}.Key(),
			Phone: strings.TrimSpace(req.Phone),
		}
		if req.ID > 0 {
			if err := h.store.UpdateStudent(r.Context(), student); err != nil {
				failFor(w, err)
				return
			}
			writeOK(w, "student updated")
			return
		}
		created, err := h.store.CreateStudent(r.Context(), student)
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			Student models.Student `json:"student"`
		}{response{OK: true, Message: "student created"}, created})
	case http.MethodDelete:
		var req struct {
			ID int64 `json:"id"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.store.DeleteStudent(r.Context(), req.ID); err != nil {
			failFor(w, err)
			return
		}
		writeOK(w, "student deleted")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleAdminStudentsClear(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) || !h.requireAdmin(w, r) {
		return
	}
	if err := h.store.ClearStudents(r.Context()); err != nil {
		failFor(w, err)
		return
	}
	writeOK(w, "all student accounts removed")
}

func (h *Handler) handleAdminOperators(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		operators, err := h.store.ListOperators(r.Context())
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			Operators []models.Operator `json:"operators"`
		}{response{OK: true}, operators})
	case http.MethodPost:
		var req struct {
			ID int64 `json:"id"`
			operatorRegisterRequest
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		operator := models.Operator{
			ID:         req.ID,
			OperatorID: strings.TrimSpace(req.OperatorID),
			Password:   req.Password,
			School:     strings.TrimSpace(req.School),
			ClubName:   strings.TrimSpace(req.ClubName),
			BoothTopic: strings.TrimSpace(req.BoothTopic),
			Name:       strings.TrimSpace(req.Name),
			Phone:      strings.TrimSpace(req.Phone),
			Email:      strings.TrimSpace(req.Email),
			Active:     true,
		}
		if req.ID > 0 {
			if err := h.store.UpdateOperator(r.Context(), operator); err != nil {
				failFor(w, err)
				return
			}
			writeOK(w, "operator updated")
			return
		}
		created, err := h.store.CreateOperator(r.Context(), operator)
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			Operator models.Operator `json:"operator"`
		}{response{OK: true, Message: "operator created"}, created})
	case http.MethodDelete:
		var req struct {
			ID int64 `json:"id"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.store.DeleteOperator(r.Context(), req.ID); err != nil {
			failFor(w, err)
			return
		}
		writeOK(w, "operator deleted")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleAdminOperatorActive(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) || !h.requireAdmin(w, r) {
		return
	}
	var req struct {
		ID     int64 `json:"id"`
		Active bool  `json:"active"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.store.SetOperatorActive(r.Context(), req.ID, req.Active); err != nil {
		failFor(w, err)
		return
	}
	if req.Active {
		writeOK(w, "operator activated")
		return
	}
	writeOK(w, "operator deactivated")
}

func (h *Handler) handleAdminOperatorsClear(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) || !h.requireAdmin(w, r) {
		return
	}
	if err := h.store.ClearOperators(r.Context()); err != nil {
		failFor(w, err)
		return
	}
	writeOK(w, "all operator accounts removed")
}

type adminBoothRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleAdminBooths(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		booths, err := h.store.ListBooths(r.Context())
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			Booths []models.Booth `json:"booths"`
		}{response{OK: true}, booths})
	case http.MethodPost:
		var req adminBoothRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeFail(w, http.StatusBadRequest, "booth name is required")
			return
		}
		booth, err := h.store.UpsertBoothByName(r.Context(), req.Name, strings.TrimSpace(req.Description))
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			Booth models.Booth `json:"booth"`
		}{response{OK: true, Message: "booth saved"}, booth})
	case http.MethodDelete:
		var req struct {
			Name string `json:"name"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.store.DeleteBoothByName(r.Context(), strings.TrimSpace(req.Name)); err != nil {
			failFor(w, err)
			return
		}
		writeOK(w, "booth and its queue removed")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleAdminBoothsClear(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) || !h.requireAdmin(w, r) {
		return
	}
	if err := h.store.ClearBooths(r.Context()); err != nil {
		failFor(w, err)
		return
	}
	writeOK(w, "all booths removed")
}

func (h *Handler) handleAdminCheckIns(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		checkins, err := h.store.ListCheckIns(r.Context())
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			CheckIns []models.CheckIn `json:"checkins"`
		}{response{OK: true}, checkins})
	case http.MethodPost:
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
		}{response{OK: true, Message: "check-in recorded"}, checkin})
	case http.MethodPut:
		var req struct {
			ID      int64  `json:"id"`
			Comment string `json:"comment"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.store.UpdateCheckInComment(r.Context(), req.ID, strings.TrimSpace(req.Comment)); err != nil {
			failFor(w, err)
			return
		}
		writeOK(w, "comment updated")
	case http.MethodDelete:
		var req struct {
			ID int64 `json:"id"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := h.store.DeleteCheckIn(r.Context(), req.ID); err != nil {
			failFor(w, err)
			return
		}
		writeOK(w, "check-in deleted")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleAdminCertificates(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		certs, err := h.store.ListCertificates(r.Context())
		if err != nil {
			failFor(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			response
			Certificates []models.Certificate `json:"certificates"`
		}{response{OK: true}, certs})
	case http.MethodPost:
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
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminCertificatePDF serves /admin/certificates/{number}/pdf.
func (h *Handler) handleAdminCertificatePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/admin/certificates/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[1] != "pdf" || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	cert, err := h.store.GetCertificateByNumber(r.Context(), parts[0])
	if err != nil {
		failFor(w, err)
		return
	}
	h.streamCertificatePDF(w, r, cert)
}

func (h *Handler) streamCertificatePDF(w http.ResponseWriter, r *http.Request, cert models.Certificate) {
	eligibility, err := h.certs.ComputeEligibility(r.Context(), cert.Identity)
	if err != nil {
		failFor(w, err)
		return
	}
	eventName := h.eventName(r)
	pdf, err := certificate.RenderPDF(certificate.PDFConfig{
		EventName: eventName,
		OrgName:   eventName + " Organizing Committee",
		SealPaths: h.opts.SealPaths,
	}, cert, eligibility.Visits)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "could not render the certificate")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cert.Number+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleAdminQueueStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}
	stats, err := h.store.QueueStats(r.Context())
	if err != nil {
		failFor(w, err)
		return
	}
	perBooth, err := h.store.BoothQueueStats(r.Context())
	if err != nil {
		failFor(w, err)
		return
	}
	notifications, err := h.store.ListRecentNotifications(r.Context(), 50)
	if err != nil {
		failFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		response
		Totals        store.QueueStats        `json:"totals"`
		Booths        []store.BoothQueueStats `json:"booths"`
		Notifications []models.Notification   `json:"notifications"`
	}{response{OK: true}, stats, perBooth, notifications})
}

func (h *Handler) handleAdminEventName(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, struct {
			response
			EventName string `json:"event_name"`
		}{response{OK: true}, h.eventName(r)})
	case http.MethodPost:
		if !h.requireAdmin(w, r) {
			return
		}
		var req struct {
			EventName string `json:"event_name"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		req.EventName = strings.TrimSpace(req.EventName)
		if req.EventName == "" {
			writeFail(w, http.StatusBadRequest, "event_name is required")
			return
		}
		if err := h.store.SetSetting(r.Context(), "event_name", req.EventName); err != nil {
			failFor(w, err)
			return
		}
		writeOK(w, "event name updated")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminSeal replaces the custom seal image used on certificates.
func (h *Handler) handleAdminSeal(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) || !h.requireAdmin(w, r) {
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("seal_image")
	if err != nil {
		writeFail(w, http.StatusBadRequest, "seal_image file is required")
		return
	}
	defer file.Close()
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".png") {
		writeFail(w, http.StatusBadRequest, "seal must be a PNG image")
		return
	}
	if _, err := upload.SaveAs(h.opts.UploadDir, "seal.png", file); err != nil {
		writeFail(w, http.StatusInternalServerError, "could not store the seal image")
		return
	}
	writeOK(w, "custom seal uploaded; it replaces the default on new certificates")
}

// handleAdminQR serves /admin/qr/{boothName} as a PNG. The booth is
// upserted first so printing QR sheets can double as booth registration.
func (h *Handler) handleAdminQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}
	boothName := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/qr/"), "/")
	if boothName == "" {
		writeFail(w, http.StatusBadRequest, "booth name is required")
		return
	}
	if _, err := h.store.UpsertBoothByName(r.Context(), boothName, ""); err != nil {
		failFor(w, err)
		return
	}
	png, err := qr.BoothPNG(h.opts.BaseURL, boothName, 256)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "could not render the QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}
	workbook, err := export.Workbook(r.Context(), h.store, time.Now())
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "could not build the export")
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="festival_complete_data.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_ = workbook.Write(w)
}

func (h *Handler) handleAdminClearAll(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) || !h.requireAdmin(w, r) {
		return
	}
	if err := h.store.ClearAllData(r.Context()); err != nil {
		failFor(w, err)
		return
	}
	writeOK(w, "all event data cleared")
}
