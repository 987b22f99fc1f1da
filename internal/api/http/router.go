// Package http exposes the platform's REST API.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"campus-community-backend/internal/metrics"
	"campus-community-backend/internal/security"
	"campus-community-backend/internal/service"
)

// Server bundles the services behind the REST handlers.
type Server struct {
	auth          service.AuthService
	users         service.UserService
	circles       service.CircleService
	boards        service.BoardService
	posts         service.PostService
	comments      service.CommentService
	childComments service.ChildCommentService
	forms         service.FormService
	lockers       service.LockerService
	tokens        security.TokenManager
}

func NewServer(
	auth service.AuthService,
	users service.UserService,
	circles service.CircleService,
	boards service.BoardService,
	posts service.PostService,
	comments service.CommentService,
	childComments service.ChildCommentService,
	forms service.FormService,
	lockers service.LockerService,
	tokens security.TokenManager,
) *Server {
	return &Server{
		auth:          auth,
		users:         users,
		circles:       circles,
		boards:        boards,
		posts:         posts,
		comments:      comments,
		childComments: childComments,
		forms:         forms,
		lockers:       lockers,
		tokens:        tokens,
	}
}

// Router builds the route table. Everything under /api/v1 except the auth
// endpoints requires a valid access token.
func (s *Server) Router() *mux.Router {
	root := mux.NewRouter()
	root.Use(metricsMiddleware)
	root.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	root.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/sign-up", s.handleSignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/sign-in", s.handleSignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(s.tokens, s.users))

	authed.HandleFunc("/users/me", s.handleGetMe).Methods(http.MethodGet)
	authed.HandleFunc("/users/me/academic-record", s.handleUpdateAcademicRecord).Methods(http.MethodPut)
	authed.HandleFunc("/users/awaiting", s.handleListAwaitingUsers).Methods(http.MethodGet)
	authed.HandleFunc("/users/{userID}/admission/accept", s.handleApproveAdmission).Methods(http.MethodPut)
	authed.HandleFunc("/users/{userID}/admission/reject", s.handleRejectAdmission).Methods(http.MethodPut)
	authed.HandleFunc("/users/{userID}/roles", s.handleGrantRole).Methods(http.MethodPut)
	authed.HandleFunc("/users/{userID}/drop", s.handleDropUser).Methods(http.MethodPut)

	authed.HandleFunc("/circles", s.handleCreateCircle).Methods(http.MethodPost)
	authed.HandleFunc("/circles", s.handleListCircles).Methods(http.MethodGet)
	authed.HandleFunc("/circles/{circleID}", s.handleGetCircle).Methods(http.MethodGet)
	authed.HandleFunc("/circles/{circleID}", s.handleDeleteCircle).Methods(http.MethodDelete)
	authed.HandleFunc("/circles/{circleID}/applications", s.handleApplyToCircle).Methods(http.MethodPost)
	authed.HandleFunc("/circles/{circleID}/applications/{userID}/accept", s.handleAcceptMember).Methods(http.MethodPut)
	authed.HandleFunc("/circles/{circleID}/applications/{userID}/reject", s.handleRejectMember).Methods(http.MethodPut)
	authed.HandleFunc("/circles/{circleID}/members", s.handleListCircleMembers).Methods(http.MethodGet)
	authed.HandleFunc("/circles/{circleID}/leave", s.handleLeaveCircle).Methods(http.MethodPut)

	authed.HandleFunc("/boards", s.handleCreateBoard).Methods(http.MethodPost)
	authed.HandleFunc("/boards", s.handleListBoards).Methods(http.MethodGet)
	authed.HandleFunc("/boards/{boardID}", s.handleDeleteBoard).Methods(http.MethodDelete)
	authed.HandleFunc("/boards/{boardID}/posts", s.handleListPosts).Methods(http.MethodGet)

	authed.HandleFunc("/posts", s.handleCreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/posts/{postID}", s.handleGetPost).Methods(http.MethodGet)
	authed.HandleFunc("/posts/{postID}", s.handleUpdatePost).Methods(http.MethodPut)
	authed.HandleFunc("/posts/{postID}", s.handleDeletePost).Methods(http.MethodDelete)
	authed.HandleFunc("/posts/{postID}/likes", s.handleLikePost).Methods(http.MethodPost)

	authed.HandleFunc("/comments", s.handleCreateComment).Methods(http.MethodPost)
	authed.HandleFunc("/comments/{commentID}", s.handleUpdateComment).Methods(http.MethodPut)
	authed.HandleFunc("/comments/{commentID}", s.handleDeleteComment).Methods(http.MethodDelete)
	authed.HandleFunc("/comments/{commentID}/likes", s.handleLikeComment).Methods(http.MethodPost)
	authed.HandleFunc("/child-comments", s.handleCreateChildComment).Methods(http.MethodPost)
	authed.HandleFunc("/child-comments/{childCommentID}", s.handleUpdateChildComment).Methods(http.MethodPut)
	authed.HandleFunc("/child-comments/{childCommentID}", s.handleDeleteChildComment).Methods(http.MethodDelete)
	authed.HandleFunc("/child-comments/{childCommentID}/likes", s.handleLikeChildComment).Methods(http.MethodPost)

	authed.HandleFunc("/forms/{formID}", s.handleGetForm).Methods(http.MethodGet)
	authed.HandleFunc("/forms/{formID}/replies", s.handleReplyToForm).Methods(http.MethodPost)
	authed.HandleFunc("/forms/{formID}/replies", s.handleListReplies).Methods(http.MethodGet)
	authed.HandleFunc("/forms/{formID}/close", s.handleCloseForm).Methods(http.MethodPut)
	authed.HandleFunc("/forms/{formID}/summary", s.handleSummarizeReplies).Methods(http.MethodGet)
	authed.HandleFunc("/forms/{formID}/export", s.handleExportReplies).Methods(http.MethodGet)

	authed.HandleFunc("/lockers/{lockerID}", s.handleGetLocker).Methods(http.MethodGet)
	authed.HandleFunc("/lockers/{lockerID}/register", s.handleRegisterLocker).Methods(http.MethodPut)
	authed.HandleFunc("/lockers/{lockerID}/return", s.handleReturnLocker).Methods(http.MethodPut)
	authed.HandleFunc("/lockers/{lockerID}/extend", s.handleExtendLocker).Methods(http.MethodPut)

	return root
}
