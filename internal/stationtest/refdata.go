package stationtest

import "net/http"

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondList(w, s.employees)
}

func (s *Server) handleTanks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondList(w, s.tanks)
}

func (s *Server) handlePumps(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondList(w, s.pumps)
}

func (s *Server) handleFuelPrices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondList(w, s.prices)
}
