package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Roomio/middleware"
	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/services"
	"Roomio/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testUserHeader stands in for the auth middleware in these tests.
const testUserHeader = "X-Test-User"

type testServer struct {
	router *gin.Engine
	svc    *services.Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.New(memory.New(), services.Options{BcryptCost: bcrypt.MinCost})
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if id := c.GetHeader(testUserHeader); id != "" {
			c.Set(middleware.UserIDKey, id)
		}
		c.Next()
	})
	return &testServer{router: router, svc: svc}
}

func (s *testServer) signUp(t *testing.T, name, userType string) string {
	t.Helper()
	p, err := s.svc.Users.SignUp(context.Background(), services.SignUpInput{
		Email:    name + "@roomio.test",
		Password: "password123",
		FullName: name,
		UserType: userType,
	})
	require.NoError(t, err)
	return p.ID
}

func (s *testServer) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	s.router.GET("/ping", Ping)

	w := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decode(t, w)["message"])
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperror.Validation("bad"), http.StatusBadRequest, "bad"},
		{"forbidden", apperror.Forbidden("no"), http.StatusForbidden, "no"},
		{"not found", apperror.NotFound("gone"), http.StatusNotFound, "gone"},
		{"conflict", apperror.Conflict("dup"), http.StatusConflict, "dup"},
		{"internal", apperror.Internal(errors.New("pq: boom"), "db"), http.StatusInternalServerError, "Internal server error"},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, decode(t, w)["error"])

			w = httptest.NewRecorder()
			c, _ = gin.CreateTestContext(w)
			respondFailure(c, tt.err)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestFriendRequestEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.router.GET("/api/friends", ListFriends(s.svc.Friends))
	s.router.GET("/api/friends/requests", ListFriendRequests(s.svc.Friends))
	s.router.POST("/api/friends/requests", SendFriendRequest(s.svc.Friends))
	s.router.PATCH("/api/friends/requests/:requestId", RespondFriendRequest(s.svc.Friends))
	s.router.DELETE("/api/friends/requests/:requestId", CancelFriendRequest(s.svc.Friends))

	alice := s.signUp(t, "alice", models.UserTypeHasRoom)
	bob := s.signUp(t, "bob", models.UserTypeHasRoom)

	w := s.do(t, http.MethodPost, "/api/friends/requests", alice, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "receiverId is required", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/friends/requests", alice, gin.H{"receiverId": "nobody"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/friends/requests", alice, gin.H{"receiverId": bob})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Friend request sent", body["message"])
	request := body["request"].(map[string]interface{})
	requestID := request["id"].(string)
	assert.Equal(t, bob, request["user"].(map[string]interface{})["id"])

	w = s.do(t, http.MethodPost, "/api/friends/requests", alice, gin.H{"receiverId": bob})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do(t, http.MethodPost, "/api/friends/requests", bob, gin.H{"receiverId": alice})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/friends/requests", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.EqualValues(t, 1, body["totalPending"])
	assert.Len(t, body["receivedRequests"], 1)
	assert.Len(t, body["sentRequests"], 0)

	// only the receiver may respond
	w = s.do(t, http.MethodPatch, "/api/friends/requests/"+requestID, alice, gin.H{"action": "accept"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPatch, "/api/friends/requests/"+requestID, bob, gin.H{"action": "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/friends/requests/"+requestID, bob, gin.H{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Equal(t, "Friend request accepted", body["message"])
	assert.Equal(t, alice, body["friendship"].(map[string]interface{})["friendId"])

	w = s.do(t, http.MethodPatch, "/api/friends/requests/"+requestID, bob, gin.H{"action": "accept"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Friend request not found or already processed", decode(t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/friends", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["friends"], 1)

	w = s.do(t, http.MethodPost, "/api/friends/requests", bob, gin.H{"receiverId": alice})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You are already friends", decode(t, w)["error"])

	w = s.do(t, http.MethodDelete, "/api/friends/requests/"+requestID, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwipeAndChatEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.router.POST("/api/matches/swipe", Swipe(s.svc.Matches))
	s.router.GET("/api/matches", ListMatches(s.svc.Matches))
	s.router.GET("/api/chats", ListChats(s.svc.Chats))
	s.router.POST("/api/chats/:chatId/messages", SendMessage(s.svc.Chats))
	s.router.GET("/api/chats/:chatId/messages", GetMessages(s.svc.Chats))
	s.router.GET("/api/chats/:chatId/pins", ListPins(s.svc.Chats))
	s.router.POST("/api/pin", PinMessage(s.svc.Chats))
	s.router.DELETE("/api/pin", UnpinMessage(s.svc.Chats))

	alice := s.signUp(t, "alice", models.UserTypeLookingForRoom)
	bob := s.signUp(t, "bob", models.UserTypeLookingForRoom)
	eve := s.signUp(t, "eve", models.UserTypeLookingForRoom)

	w := s.do(t, http.MethodPost, "/api/matches/swipe", alice, gin.H{"targetId": bob})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/matches/swipe", alice, gin.H{"targetId": bob, "liked": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, decode(t, w)["match"])

	w = s.do(t, http.MethodPost, "/api/matches/swipe", bob, gin.H{"targetId": alice, "liked": true})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["match"])
	chatID := body["chat"].(map[string]interface{})["id"].(string)

	w = s.do(t, http.MethodGet, "/api/matches", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	matches := decode(t, w)["matches"].([]interface{})
	require.Len(t, matches, 1)
	assert.Equal(t, chatID, matches[0].(map[string]interface{})["chatId"])

	w = s.do(t, http.MethodPost, "/api/chats/"+chatID+"/messages", eve, gin.H{"content": "hi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/chats/"+chatID+"/messages", alice, gin.H{"content": "<b>hi</b> bob"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msg := decode(t, w)
	assert.Equal(t, "hi bob", msg["content"])
	messageID := msg["id"].(string)

	w = s.do(t, http.MethodGet, "/api/chats/"+chatID+"/messages?before=yesterday", bob, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/chats/"+chatID+"/messages?limit=10", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["messages"], 1)

	w = s.do(t, http.MethodGet, "/api/chats", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	chats := decode(t, w)["chats"].([]interface{})
	require.Len(t, chats, 1)
	assert.Equal(t, alice, chats[0].(map[string]interface{})["participant"].(map[string]interface{})["id"])

	pin := gin.H{"chatId": chatID, "messageId": messageID}
	w = s.do(t, http.MethodPost, "/api/pin", alice, gin.H{"chatId": chatID, "messageId": messageID, "userId": bob})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = s.do(t, http.MethodPost, "/api/pin", eve, pin)
	assert.Equal(t, http.StatusForbidden, w.Code)

	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodPost, "/api/pin", alice, pin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, decode(t, w)["success"])
	}

	w = s.do(t, http.MethodGet, "/api/chats/"+chatID+"/pins", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["pins"], 1)

	w = s.do(t, http.MethodDelete, "/api/pin", bob, pin)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodDelete, "/api/pin", bob, pin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}
