package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"harvestharmony/db"
	"harvestharmony/globals"
	"harvestharmony/models"
	"harvestharmony/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   7 * 24 * 60 * 60,
	})
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || len(creds.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and a password of at least 6 characters are required")
		return
	}
	if creds.Role != "farmer" && creds.Role != "operator" {
		utils.RespondWithError(w, http.StatusBadRequest, "Role must be farmer or operator")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := models.User{
		UserID:       uuid.NewString(),
		Username:     creds.Username,
		PasswordHash: string(hash),
		Role:         creds.Role,
		Phone:        creds.Phone,
		CreatedAt:    time.Now(),
	}

	if _, err := db.UsersCollection.InsertOne(context.TODO(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Username already taken")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := NewToken(user.UserID, user.Username, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	setSessionCookie(w, token)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "user": user, "token": token})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	err := db.UsersCollection.FindOne(context.TODO(), bson.M{"username": creds.Username}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := NewToken(user.UserID, user.Username, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	setSessionCookie(w, token)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": user, "token": token})
}

// Me returns the identity attached by the auth middleware.
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())
	if userID == "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": false})
		return
	}

	var user models.User
	err := db.UsersCollection.FindOne(context.TODO(), bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		username, _ := r.Context().Value(globals.UsernameKey).(string)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"user": utils.M{
				"userId":   userID,
				"username": username,
				"role":     utils.GetRoleFromContext(r.Context()),
			},
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": user})
}

func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out"})
}
