// Package stationtest provides an in-memory stand-in for the station
// management API. Tests run the client workflows against it to exercise
// the server-authority paths (duplicate active shift rejection, attendance
// upserts, not_marked placeholders), and the CLI's demo mode serves it
// in-process. It mirrors the remote surface; it is not a backend.
package stationtest

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"fuelops/internal/models"
	"fuelops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userContextKey contextKey = "user"

// Server holds the fake station state behind a chi router
type Server struct {
	mu sync.Mutex

	users      map[string]seedUser // keyed by email
	employees  []models.Employee
	tanks      []models.Tank
	pumps      []models.Pump
	prices     []models.FuelPrice
	shifts     []models.Shift
	attendance []models.AttendanceRecord

	nextShift  int
	nextRecord int
	jwtSecret  []byte
	requests   int64

	// FailSummary forces the shift summary endpoint to answer 500, for
	// testing the client's degraded close-preparation path
	FailSummary bool
}

type seedUser struct {
	password string
	user     models.User
}

// New creates a fake station seeded with demo data and no shifts
func New() *Server {
	s := &Server{
		users:      map[string]seedUser{},
		nextShift:  1,
		nextRecord: 1,
		jwtSecret:  []byte("stationtest-secret"),
	}
	s.seed()
	return s
}

// Handler returns the HTTP handler for the fake station API
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)

		r.Get("/api/shifts", s.handleListShifts)
		r.Post("/api/shifts", s.handleCreateShift)
		r.Get("/api/shifts/{id}/summary", s.handleShiftSummary)
		r.Post("/api/shifts/{id}/close", s.handleCloseShift)

		r.Post("/api/attendance", s.handleMarkAttendance)
		r.Get("/api/attendance/employee/{employeeID}", s.handleEmployeeHistory)
		r.Get("/api/attendance/shift/{shiftID}", s.handleShiftAttendance)
		r.Get("/api/attendance/summary", s.handleMonthlySummary)
		r.Delete("/api/attendance/{employeeID}/{recordID}", s.handleDeleteAttendance)

		r.Get("/api/employees", s.handleEmployees)
		r.Get("/api/tanks", s.handleTanks)
		r.Get("/api/pumps", s.handlePumps)
		r.Get("/api/fuel-prices", s.handleFuelPrices)
	})

	return r
}

// RequestCount reports how many requests the fake has served. Tests use it
// to prove that client-side precondition failures send nothing.
func (s *Server) RequestCount() int64 {
	return atomic.LoadInt64(&s.requests)
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.requests, 1)
		next.ServeHTTP(w, r)
	})
}

// auth validates the bearer token and adds the user to the request context
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		userID, okID := claims["user_id"].(string)
		email, okEmail := claims["email"].(string)
		role, okRole := claims["role"].(string)
		if !okID || !okEmail || !okRole {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user := models.User{ID: userID, Email: email, Role: role}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user the auth middleware attached
func userFrom(r *http.Request) models.User {
	user, _ := r.Context().Value(userContextKey).(models.User)
	return user
}

func respondList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	utils.RespondData(w, items)
}
