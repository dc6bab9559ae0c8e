package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"parlour.service/internal/api/handler"
	"parlour.service/internal/api/middleware"
	"parlour.service/internal/core"
	"parlour.service/internal/core/model"
	"parlour.service/internal/realtime"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Attendance *core.AttendanceService
	Employees  *core.EmployeeService
	Tasks      *core.TaskService
	Auth       *core.AuthService
	Hub        *realtime.Hub
	AuthMW     *middleware.AuthMiddleware
	// SecureCookies controls the Secure flag on session cookies.
	SecureCookies bool
}

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(s Services) *mux.Router {
	attendanceHandler := &handler.AttendanceHandler{Service: s.Attendance}
	employeeHandler := &handler.EmployeeHandler{Service: s.Employees}
	taskHandler := &handler.TaskHandler{Service: s.Tasks}
	authHandler := &handler.AuthHandler{Service: s.Auth, SecureCookies: s.SecureCookies}

	authed := s.AuthMW.Authenticate
	superadmin := func(h http.Handler) http.Handler {
		return authed(s.AuthMW.RequireRole(string(model.RoleSuperAdmin))(h))
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"api is working"}`))
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.Handle("/auth/me", authed(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	api.Handle("/employees", authed(http.HandlerFunc(employeeHandler.List))).Methods(http.MethodGet)
	api.HandleFunc("/employees/public", employeeHandler.List).Methods(http.MethodGet)
	api.Handle("/employees", superadmin(http.HandlerFunc(employeeHandler.Create))).Methods(http.MethodPost)
	api.Handle("/employees/{id}", superadmin(http.HandlerFunc(employeeHandler.Update))).Methods(http.MethodPut)
	api.Handle("/employees/{id}", superadmin(http.HandlerFunc(employeeHandler.Delete))).Methods(http.MethodDelete)

	api.Handle("/tasks", authed(http.HandlerFunc(taskHandler.List))).Methods(http.MethodGet)
	api.Handle("/tasks", superadmin(http.HandlerFunc(taskHandler.Create))).Methods(http.MethodPost)
	api.Handle("/tasks/{id}", superadmin(http.HandlerFunc(taskHandler.Update))).Methods(http.MethodPut)
	api.Handle("/tasks/{id}", superadmin(http.HandlerFunc(taskHandler.Delete))).Methods(http.MethodDelete)

	api.Handle("/attendance", authed(http.HandlerFunc(attendanceHandler.List))).Methods(http.MethodGet)
	api.HandleFunc("/attendance/public", attendanceHandler.List).Methods(http.MethodGet)
	api.Handle("/attendance/status/{employeeId}", authed(http.HandlerFunc(attendanceHandler.Status))).Methods(http.MethodGet)
	api.HandleFunc("/attendance/punch", attendanceHandler.Punch).Methods(http.MethodPost)

	r.HandleFunc("/ws/attendance", realtime.Handler(s.Hub, s.Attendance))

	return r
}
