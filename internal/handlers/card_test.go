package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/cardtrack-dev/cardtrack/internal/database"
	"github.com/cardtrack-dev/cardtrack/internal/dto"
	"github.com/cardtrack-dev/cardtrack/internal/models"
	"github.com/cardtrack-dev/cardtrack/internal/repository"
	"github.com/cardtrack-dev/cardtrack/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CardHandlerTestSuite defines the test suite for CardHandler
type CardHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *CardHandler
}

// SetupTest runs before each test
func (suite *CardHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	suite.Require().NoError(err)

	// Run the production migration path, partial Ongoing index included
	database.SetDB(suite.db)
	suite.Require().NoError(database.Migrate())

	userRepo := repository.NewUserRepository(suite.db)
	cardRepo := repository.NewCardRepository(suite.db)
	authz := services.NewAuthzService(userRepo)
	suite.handler = NewCardHandler(services.NewCardService(cardRepo, authz))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *CardHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *CardHandlerTestSuite) createTestUser(email string, isAdmin bool) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		IsAdmin:      isAdmin,
	}
	suite.db.Create(user)
	return user
}

func (suite *CardHandlerTestSuite) createTestCard(title string, userID uint64, status models.CardStatus) *models.Card {
	card := &models.Card{
		Title:    title,
		Date:     time.Now(),
		Status:   status,
		Priority: models.PriorityMedium,
		UserID:   userID,
	}
	suite.db.Create(card)
	return card
}

// createAuthContext builds a gin context carrying the actor id, the way the
// auth middleware would have left it
func (suite *CardHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != 0 {
		c.Set("user_id", userID)
	}

	return c, w
}

func (suite *CardHandlerTestSuite) setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

func (suite *CardHandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	code, _ := response["code"].(string)
	return code
}

// TestCreateCard_Success tests card creation with defaults applied
func (suite *CardHandlerTestSuite) TestCreateCard_Success() {
	user := suite.createTestUser("test@example.com", false)

	body, _ := json.Marshal(map[string]string{
		"title":       "Fix bug",
		"description": "Null pointer on login",
	})
	c, w := suite.createAuthContext("POST", "/cards", body, user.ID)

	suite.handler.CreateCard(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.CardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Fix bug", response.Title)
	assert.Equal(suite.T(), models.StatusToDo, response.Status)
	assert.Equal(suite.T(), models.PriorityMedium, response.Priority)
	suite.Require().NotNil(response.User)
	assert.Equal(suite.T(), "test@example.com", response.User.Email)
}

// TestCreateCard_DateSetServerSide tests that the creation date is set by
// the server and caller-supplied dates are ignored
func (suite *CardHandlerTestSuite) TestCreateCard_DateSetServerSide() {
	user := suite.createTestUser("test@example.com", false)

	body := []byte(`{"title": "Fix bug", "date": "1999-01-01T00:00:00Z"}`)
	c, w := suite.createAuthContext("POST", "/cards", body, user.ID)

	suite.handler.CreateCard(c)

	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.CardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.WithinDuration(suite.T(), time.Now(), response.Date, time.Minute)
}

// TestCreateCard_TitleValidation tests the title rules on create
func (suite *CardHandlerTestSuite) TestCreateCard_TitleValidation() {
	user := suite.createTestUser("test@example.com", false)

	cases := []struct {
		name  string
		title string
	}{
		{"missing", ""},
		{"too short", "a"},
		{"punctuation", "ab!"},
	}

	for _, tc := range cases {
		body, _ := json.Marshal(map[string]string{"title": tc.title})
		c, w := suite.createAuthContext("POST", "/cards", body, user.ID)

		suite.handler.CreateCard(c)

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, tc.name)
		assert.Equal(suite.T(), "INVALID_FIELD", suite.errorCode(w), tc.name)
	}
}

// TestCreateCard_InvalidEnums tests status and priority enum validation
func (suite *CardHandlerTestSuite) TestCreateCard_InvalidEnums() {
	user := suite.createTestUser("test@example.com", false)

	body, _ := json.Marshal(map[string]string{"title": "Fix bug", "status": "Blocked"})
	c, w := suite.createAuthContext("POST", "/cards", body, user.ID)
	suite.handler.CreateCard(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "INVALID_FIELD", suite.errorCode(w))

	body, _ = json.Marshal(map[string]string{"title": "Fix bug", "priority": "Critical"})
	c, w = suite.createAuthContext("POST", "/cards", body, user.ID)
	suite.handler.CreateCard(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "INVALID_FIELD", suite.errorCode(w))
}

// TestCreateCard_OngoingConflict tests that a second Ongoing card is refused
func (suite *CardHandlerTestSuite) TestCreateCard_OngoingConflict() {
	user := suite.createTestUser("test@example.com", false)
	suite.createTestCard("First task", user.ID, models.StatusOngoing)

	body, _ := json.Marshal(map[string]string{"title": "Second task", "status": "Ongoing"})
	c, w := suite.createAuthContext("POST", "/cards", body, user.ID)

	suite.handler.CreateCard(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "CONFLICTING_STATE", suite.errorCode(w))

	// The failed create must not be observable
	var count int64
	suite.db.Model(&models.Card{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestCreateCard_Unauthenticated tests creation without an actor
func (suite *CardHandlerTestSuite) TestCreateCard_Unauthenticated() {
	body, _ := json.Marshal(map[string]string{"title": "Fix bug"})
	c, w := suite.createAuthContext("POST", "/cards", body, 0)

	suite.handler.CreateCard(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestUpdateCard_OwnerSuccess tests that the owner can edit their card
func (suite *CardHandlerTestSuite) TestUpdateCard_OwnerSuccess() {
	user := suite.createTestUser("owner@example.com", false)
	card := suite.createTestCard("Fix bug", user.ID, models.StatusToDo)

	body, _ := json.Marshal(map[string]string{"status": "Testing"})
	c, w := suite.createAuthContext("PATCH", "/cards/1", body, user.ID)
	suite.setIDParam(c, card.ID)

	suite.handler.UpdateCard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.CardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.StatusTesting, response.Status)
	assert.Equal(suite.T(), "Fix bug", response.Title)
}

// TestUpdateCard_NonOwnerForbidden tests that non-owners always get 403
func (suite *CardHandlerTestSuite) TestUpdateCard_NonOwnerForbidden() {
	owner := suite.createTestUser("owner@example.com", false)
	other := suite.createTestUser("other@example.com", false)
	// Admin status does not grant edit rights either
	admin := suite.createTestUser("admin@example.com", true)
	card := suite.createTestCard("Fix bug", owner.ID, models.StatusToDo)

	for _, actor := range []*models.User{other, admin} {
		body, _ := json.Marshal(map[string]string{"title": "Hijacked"})
		c, w := suite.createAuthContext("PATCH", "/cards/1", body, actor.ID)
		suite.setIDParam(c, card.ID)

		suite.handler.UpdateCard(c)

		assert.Equal(suite.T(), http.StatusForbidden, w.Code, actor.Email)
	}
}

// TestUpdateCard_NotFound tests updating a missing card
func (suite *CardHandlerTestSuite) TestUpdateCard_NotFound() {
	user := suite.createTestUser("test@example.com", false)

	body, _ := json.Marshal(map[string]string{"title": "Anything"})
	c, w := suite.createAuthContext("PATCH", "/cards/999", body, user.ID)
	suite.setIDParam(c, 999)

	suite.handler.UpdateCard(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateCard_PartialMerge tests the falsy-fallback merge: unsupplied and
// empty fields keep their stored values
func (suite *CardHandlerTestSuite) TestUpdateCard_PartialMerge() {
	user := suite.createTestUser("test@example.com", false)
	card := &models.Card{
		Title:       "Fix bug",
		Description: "Original description",
		Date:        time.Now(),
		Status:      models.StatusTesting,
		Priority:    models.PriorityHigh,
		UserID:      user.ID,
	}
	suite.db.Create(card)

	body := []byte(`{"description": "x", "title": ""}`)
	c, w := suite.createAuthContext("PATCH", "/cards/1", body, user.ID)
	suite.setIDParam(c, card.ID)

	suite.handler.UpdateCard(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.CardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "x", response.Description)
	assert.Equal(suite.T(), "Fix bug", response.Title)
	assert.Equal(suite.T(), models.StatusTesting, response.Status)
	assert.Equal(suite.T(), models.PriorityHigh, response.Priority)
}

// TestUpdateCard_OngoingConflict tests that transitioning a second card to
// Ongoing is refused
func (suite *CardHandlerTestSuite) TestUpdateCard_OngoingConflict() {
	user := suite.createTestUser("test@example.com", false)
	suite.createTestCard("First task", user.ID, models.StatusOngoing)
	second := suite.createTestCard("Second task", user.ID, models.StatusToDo)

	body, _ := json.Marshal(map[string]string{"status": "Ongoing"})
	c, w := suite.createAuthContext("PATCH", "/cards/2", body, user.ID)
	suite.setIDParam(c, second.ID)

	suite.handler.UpdateCard(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "CONFLICTING_STATE", suite.errorCode(w))

	// Prior state unchanged
	var stored models.Card
	suite.db.First(&stored, second.ID)
	assert.Equal(suite.T(), models.StatusToDo, stored.Status)
}

// TestUpdateCard_OngoingExcludesSelf tests that the Ongoing card itself can
// still be edited while keeping its status
func (suite *CardHandlerTestSuite) TestUpdateCard_OngoingExcludesSelf() {
	user := suite.createTestUser("test@example.com", false)
	card := suite.createTestCard("First task", user.ID, models.StatusOngoing)

	body, _ := json.Marshal(map[string]string{"description": "still on it", "status": "Ongoing"})
	c, w := suite.createAuthContext("PATCH", "/cards/1", body, user.ID)
	suite.setIDParam(c, card.ID)

	suite.handler.UpdateCard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.CardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.StatusOngoing, response.Status)
	assert.Equal(suite.T(), "still on it", response.Description)
}

// TestDeleteCard_NonAdminForbidden tests that ownership grants no delete
// rights
func (suite *CardHandlerTestSuite) TestDeleteCard_NonAdminForbidden() {
	owner := suite.createTestUser("owner@example.com", false)
	card := suite.createTestCard("Fix bug", owner.ID, models.StatusToDo)

	c, w := suite.createAuthContext("DELETE", "/cards/1", nil, owner.ID)
	suite.setIDParam(c, card.ID)

	suite.handler.DeleteCard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Card{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestDeleteCard_AdminSuccess tests admin deletion and the comment cascade
func (suite *CardHandlerTestSuite) TestDeleteCard_AdminSuccess() {
	owner := suite.createTestUser("owner@example.com", false)
	admin := suite.createTestUser("admin@example.com", true)
	card := suite.createTestCard("Fix bug", owner.ID, models.StatusToDo)
	suite.db.Create(&models.Comment{Message: "on it", UserID: owner.ID, CardID: card.ID})

	c, w := suite.createAuthContext("DELETE", "/cards/1", nil, admin.ID)
	suite.setIDParam(c, card.ID)

	suite.handler.DeleteCard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Card Fix bug was deleted successfully", response["message"])

	var cardCount, commentCount int64
	suite.db.Model(&models.Card{}).Count(&cardCount)
	suite.db.Model(&models.Comment{}).Count(&commentCount)
	assert.Equal(suite.T(), int64(0), cardCount)
	assert.Equal(suite.T(), int64(0), commentCount)
}

// TestDeleteCard_NotFound tests deleting a missing card
func (suite *CardHandlerTestSuite) TestDeleteCard_NotFound() {
	admin := suite.createTestUser("admin@example.com", true)

	c, w := suite.createAuthContext("DELETE", "/cards/999", nil, admin.ID)
	suite.setIDParam(c, 999)

	suite.handler.DeleteCard(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestListCards_OrderedByDateDesc tests list ordering, most recent first
func (suite *CardHandlerTestSuite) TestListCards_OrderedByDateDesc() {
	user := suite.createTestUser("test@example.com", false)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		suite.db.Create(&models.Card{
			Title:    title,
			Date:     base.Add(time.Duration(i) * time.Hour),
			Status:   models.StatusToDo,
			Priority: models.PriorityLow,
			UserID:   user.ID,
		})
	}

	c, w := suite.createAuthContext("GET", "/cards", nil, 0)

	suite.handler.ListCards(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response []dto.CardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 3)
	assert.Equal(suite.T(), "Newest", response[0].Title)
	assert.Equal(suite.T(), "Middle", response[1].Title)
	assert.Equal(suite.T(), "Oldest", response[2].Title)
}

// TestGetCard_WithComments tests the card detail shape
func (suite *CardHandlerTestSuite) TestGetCard_WithComments() {
	user := suite.createTestUser("test@example.com", false)
	card := suite.createTestCard("Fix bug", user.ID, models.StatusToDo)
	suite.db.Create(&models.Comment{Message: "first", UserID: user.ID, CardID: card.ID})
	suite.db.Create(&models.Comment{Message: "second", UserID: user.ID, CardID: card.ID})

	c, w := suite.createAuthContext("GET", "/cards/1", nil, 0)
	suite.setIDParam(c, card.ID)

	suite.handler.GetCard(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.CardDetailDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Fix bug", response.Title)
	suite.Require().Len(response.Comments, 2)
	suite.Require().NotNil(response.Comments[0].User)
	assert.Equal(suite.T(), "test@example.com", response.Comments[0].User.Email)
}

// TestGetCard_NotFound tests fetching a missing card
func (suite *CardHandlerTestSuite) TestGetCard_NotFound() {
	c, w := suite.createAuthContext("GET", "/cards/999", nil, 0)
	suite.setIDParam(c, 999)

	suite.handler.GetCard(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestOngoingHandoffScenario walks the full lifecycle: one Ongoing card at a
// time, freed up again by an admin delete
func (suite *CardHandlerTestSuite) TestOngoingHandoffScenario() {
	user := suite.createTestUser("a@x.com", false)
	admin := suite.createTestUser("b@x.com", true)

	// First Ongoing card succeeds
	body, _ := json.Marshal(map[string]string{"title": "Fix bug", "status": "Ongoing"})
	c, w := suite.createAuthContext("POST", "/cards", body, user.ID)
	suite.handler.CreateCard(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var first dto.CardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &first))

	// Second Ongoing card conflicts
	body, _ = json.Marshal(map[string]string{"title": "Fix bug2", "status": "Ongoing"})
	c, w = suite.createAuthContext("POST", "/cards", body, user.ID)
	suite.handler.CreateCard(c)
	suite.Require().Equal(http.StatusConflict, w.Code)

	// Admin deletes the first card
	c, w = suite.createAuthContext("DELETE", "/cards/1", nil, admin.ID)
	suite.setIDParam(c, first.ID)
	suite.handler.DeleteCard(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	// Now the second card can be created
	body, _ = json.Marshal(map[string]string{"title": "Fix bug2", "status": "Ongoing"})
	c, w = suite.createAuthContext("POST", "/cards", body, user.ID)
	suite.handler.CreateCard(c)
	suite.Require().Equal(http.StatusCreated, w.Code)
}

// TestCardHandlerTestSuite runs the test suite
func TestCardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CardHandlerTestSuite))
}
