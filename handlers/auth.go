package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"opsboard/config"
	"opsboard/middleware"
	"opsboard/models"
)

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	IsAdmin bool      `json:"isAdmin"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	// The first account gets admin so a fresh install is usable.
	var count int64
	if err := config.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		writeDBError(w, err)
		return
	}

	u := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		IsAdmin:      count == 0,
		IsActive:     true,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "email already taken", http.StatusConflict)
		} else {
			writeDBError(w, err)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var u models.User
	if err := config.DB.Where("email = ? AND is_active = ?", strings.ToLower(req.Email), true).First(&u).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := middleware.GenerateToken(u.ID.String(), u.Name, u.IsAdmin)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}
	out := loginResp{
		Token: token,
		User: userPayload{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Phone:   u.Phone,
			IsAdmin: u.IsAdmin,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userPayload{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		IsAdmin: user.IsAdmin,
	})
}

func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.User{}).Where("is_active = ?", true)
	query = params.ApplySearch(query, []string{"name", "email", "phone"})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var users []models.User
	query = params.ApplySort(query, map[string]bool{"name": true, "email": true, "created_at": true}, "name")
	query = params.ApplyPagination(query)
	if err := query.Find(&users).Error; err != nil {
		writeDBError(w, err)
		return
	}

	out := make([]userPayload, len(users))
	for i, u := range users {
		out[i] = userPayload{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, IsAdmin: u.IsAdmin}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": out,
		"meta": params.Meta(total),
	})
}

// UpdateUser lets an admin change a user's profile, admin flag or
// password. Admins cannot strip their own admin flag.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var in struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		IsAdmin  *bool   `json:"isAdmin"`
		IsActive *bool   `json:"isActive"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.IsAdmin != nil {
		if user.ID.String() == middleware.GetUserID(r) && !*in.IsAdmin {
			http.Error(w, "cannot remove your own admin access", http.StatusBadRequest)
			return
		}
		user.IsAdmin = *in.IsAdmin
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "error hashing password", http.StatusInternalServerError)
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userPayload{
		ID: user.ID, Name: user.Name, Email: user.Email, Phone: user.Phone, IsAdmin: user.IsAdmin,
	})
}

// DeleteUser deactivates the account instead of removing the row, so
// records created by the user keep their attribution.
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == middleware.GetUserID(r) {
		http.Error(w, "cannot delete your own account", http.StatusBadRequest)
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		writeDBError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
