package server

import (
	"fmt"
	"net/http"
	"strconv"

	"trak/internal/api"
	"trak/internal/holiday"
)

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("year")
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 2200 {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("invalid year %q", raw), ErrCodeInvalidYear))
		return
	}

	holidays := holiday.ForYear(year)
	resp := make([]api.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, api.HolidayResponse{Date: h.Date, Name: h.Name, Type: h.Type})
	}
	s.writeJSON(w, http.StatusOK, resp)
}
