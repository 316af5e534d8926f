package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ailab/authd/internal/auth/domain"
	"github.com/ailab/authd/internal/auth/service"
	"github.com/ailab/authd/pkg/httpx"
	"github.com/ailab/authd/pkg/slogx"
)

type createUserRequest struct {
	AccountName string `json:"account_name"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	Sno         string `json:"sno"`
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
	Sno   string `json:"sno"`
}

type updateStatusRequest struct {
	Status int `json:"status"`
}

type userPageResponse struct {
	Total    int64         `json:"total"`
	PageNum  int64         `json:"page_num"`
	PageSize int64         `json:"page_size"`
	Users    []domain.User `json:"users"`
}

// GetUserHandler returns a single user record. Regular users may only
// read themselves; admins may read anyone.
func GetUserHandler(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		ident, ok := httpx.IdentityFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusInternalServerError, "invalid_context")
			return
		}
		if ident.Role != domain.RoleAdmin.String() && ident.UserID != id {
			httpx.WriteError(w, http.StatusForbidden, "permission_denied")
			return
		}

		u, err := users.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

// CreateUserHandler inserts a new account. Admin only.
func CreateUserHandler(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if req.AccountName == "" || req.Password == "" {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		role, err := domain.ParseRole(req.Role)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		id, err := users.Create(r.Context(), domain.User{
			AccountName: req.AccountName,
			Name:        req.Name,
			Phone:       req.Phone,
			Role:        role,
			Sno:         req.Sno,
			Status:      domain.StatusEnabled,
		}, req.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		slogx.FromContext(r.Context()).Info("user created",
			"user_id", id,
			"account_name", req.AccountName,
		)
		httpx.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
	}
}

// UpdateUserHandler replaces the mutable fields of an existing account.
// The body carries the full record, role included; an update is not a
// patch, so omitting the role is an error rather than a silent demotion.
// Admin only.
func UpdateUserHandler(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		role, err := domain.ParseRole(req.Role)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		err = users.Update(r.Context(), domain.User{
			ID:    id,
			Name:  req.Name,
			Phone: req.Phone,
			Role:  role,
			Sno:   req.Sno,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// UpdateUserStatusHandler enables or disables an account. Admin only.
func UpdateUserStatusHandler(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		status := domain.UserStatus(req.Status)
		if status != domain.StatusDisabled && status != domain.StatusEnabled {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		if err := users.UpdateStatus(r.Context(), id, status); err != nil {
			writeServiceError(w, r, err)
			return
		}

		slogx.FromContext(r.Context()).Info("user status changed",
			"user_id", id,
			"status", req.Status,
		)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListUsersHandler returns a page of users. Admin only.
func ListUsersHandler(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNum := queryInt(r, "page_num", 1)
		pageSize := queryInt(r, "page_size", 10)

		page, total, err := users.List(r.Context(), pageNum, pageSize)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if page == nil {
			page = []domain.User{}
		}

		httpx.WriteJSON(w, http.StatusOK, userPageResponse{
			Total:    total,
			PageNum:  pageNum,
			PageSize: pageSize,
			Users:    page,
		})
	}
}

func queryInt(r *http.Request, key string, def int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}
