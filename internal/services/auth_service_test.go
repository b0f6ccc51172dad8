package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/imharishpatil/Prompthub-sub000/internal/config"
	"github.com/imharishpatil/Prompthub-sub000/internal/dto"
	"github.com/imharishpatil/Prompthub-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test so parallel tests don't share state.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Prompt{},
		&models.Feedback{},
		&models.Report{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-at-least-32-characters!!",
		JWTAccessExpiry:  168 * time.Hour,
		JWTRefreshExpiry: 720 * time.Hour,
		GoogleClientID:   "prompthub-test-client",
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(db, newTestConfig()), db
}

func TestSignup(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Signup(&dto.SignupRequest{
		Email:    "a@x.com",
		Password: "Secret123!",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.False(t, resp.User.IsGoogleUser)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	_, err = svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Different99!"})
	require.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestSignup_ShortPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "short"})
	require.Error(t, err)
}

func TestSignup_NeverStoresPlaintext(t *testing.T) {
	svc, db := newTestAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
	assert.NotEqual(t, "Secret123!", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	signupResp, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	loginResp, err := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.Equal(t, signupResp.User.ID, loginResp.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "WrongPass1!"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIndistinguishableFromWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	_, unknownErr := svc.Login(&dto.LoginRequest{Email: "nobody@x.com", Password: "Secret123!"})
	_, wrongErr := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "WrongPass1!"})

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLogin_GoogleOnlyAccountRejected(t *testing.T) {
	svc, db := newTestAuthService(t)

	googleID := "google-sub-1"
	user := models.User{
		ID:           uuid.New(),
		Email:        "g@x.com",
		GoogleID:     &googleID,
		AuthProvider: "google",
	}
	require.NoError(t, db.Create(&user).Error)

	_, err := svc.Login(&dto.LoginRequest{Email: "g@x.com", Password: "anything123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccessToken_DecodesToAccountID(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(newTestConfig().JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "a@x.com", claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), exp.Time, time.Minute)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	name := "New Name"
	avatar := "https://cdn.example.com/a.png"
	user, err := svc.UpdateProfile(resp.User.ID, &dto.UpdateProfileRequest{Name: &name, AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, avatar, user.AvatarURL)
}

func TestUpdateProfile_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)
	resp, err := svc.Signup(&dto.SignupRequest{Email: "b@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	taken := "a@x.com"
	_, err = svc.UpdateProfile(resp.User.ID, &dto.UpdateProfileRequest{Email: &taken})
	require.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestDeleteAccount_CascadesOwnedContent(t *testing.T) {
	svc, db := newTestAuthService(t)

	aResp, err := svc.Signup(&dto.SignupRequest{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)
	bResp, err := svc.Signup(&dto.SignupRequest{Email: "b@x.com", Password: "Secret123!"})
	require.NoError(t, err)
	aID, bID := aResp.User.ID, bResp.User.ID

	promptSvc := NewPromptService(db)
	feedbackSvc := NewFeedbackService(db, nil)

	aPrompt, err := promptSvc.CreatePrompt(aID, &dto.CreatePromptRequest{Title: "A's prompt", Content: "body", Public: true})
	require.NoError(t, err)
	bPrompt, err := promptSvc.CreatePrompt(bID, &dto.CreatePromptRequest{Title: "B's prompt", Content: "body", Public: true})
	require.NoError(t, err)

	// B rates A's prompt; A rates B's prompt.
	_, err = feedbackSvc.CreateFeedback(bID, aPrompt.ID, &dto.CreateFeedbackRequest{Rating: 4})
	require.NoError(t, err)
	_, err = feedbackSvc.CreateFeedback(aID, bPrompt.ID, &dto.CreateFeedbackRequest{Rating: 5})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(aID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", aID).Count(&count)
	assert.Zero(t, count, "user row should be gone")

	db.Model(&models.Prompt{}).Where("author_id = ?", aID).Count(&count)
	assert.Zero(t, count, "A's prompts should be gone")

	db.Model(&models.Feedback{}).Where("author_id = ?", aID).Count(&count)
	assert.Zero(t, count, "feedback A wrote should be gone")

	db.Model(&models.Feedback{}).Where("prompt_id = ?", aPrompt.ID).Count(&count)
	assert.Zero(t, count, "feedback on A's prompts should be gone")

	db.Model(&models.RefreshToken{}).Where("user_id = ?", aID).Count(&count)
	assert.Zero(t, count, "A's refresh tokens should be gone")

	// B's content survives.
	db.Model(&models.Prompt{}).Where("id = ?", bPrompt.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteAccount_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	require.ErrorIs(t, svc.DeleteAccount(uuid.New()), ErrUserNotFound)
}
