package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/tradezlk/vendorgo/internal/models"
	"github.com/tradezlk/vendorgo/internal/utils"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	VendorID string `json:"vendorId" validate:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// register handles portal account registration
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.VendorUser{
		Email:    regReq.Email,
		Password: hashedPassword,
		FullName: regReq.FullName,
		VendorID: regReq.VendorID,
		Provider: "password",
	}
	if err := r.db.Create(&user).Error; err != nil {
		respondError(w, http.StatusConflict, "Account already exists")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// login handles password login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user models.VendorUser
	if err := r.db.Where("email = ?", loginReq.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	r.db.Save(&user)

	accessToken, refreshToken, err := utils.GenerateTokens(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// qrLogin exchanges a QR token scanned by the mobile app for a portal
// session. The upstream endpoint validates the token and returns the
// vendor identity; the portal account is created on first login.
func (r *Router) qrLogin(w http.ResponseWriter, req *http.Request) {
	qrToken := req.URL.Query().Get("QRToken")
	if qrToken == "" {
		qrToken = req.URL.Query().Get("token")
	}
	if qrToken == "" {
		respondError(w, http.StatusBadRequest, "QR token missing")
		return
	}

	result, err := r.upstream.LoginViaQR(req.Context(), qrToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "QR access denied")
		return
	}

	email := result.Email
	if email == "" {
		// Some vendor accounts only carry an ID upstream
		email = result.VendorID + "@qr.local"
	}

	var user models.VendorUser
	err = r.db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		// refresh identity fields on every QR login
		user.FullName = result.FullName
		user.VendorID = result.VendorID
		user.ProfilePictureURL = result.ProfilePictureURL
	case err == gorm.ErrRecordNotFound:
		user = models.VendorUser{
			ID:                uuid.NewString(),
			Email:             email,
			FullName:          result.FullName,
			VendorID:          result.VendorID,
			Provider:          "qr",
			ProfilePictureURL: result.ProfilePictureURL,
		}
	default:
		respondError(w, http.StatusInternalServerError, "Account lookup failed")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := r.db.Save(&user).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Account save failed")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// qrImage renders the QR code the mobile app scans to hand its session to
// the portal. The code carries the portal's QR login URL with the token.
func (r *Router) qrImage(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "token is required")
		return
	}

	loginURL := r.cfg.PortalURL + "/auth/qr?token=" + token
	png, err := qrcode.Encode(loginURL, qrcode.Low, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
