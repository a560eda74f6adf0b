package web

import (
	"encoding/json"
	"net/http"

	"f0oster/orgspy/hierarchy"
	"f0oster/orgspy/report"
	"f0oster/orgspy/snapshot"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeCSV(w http.ResponseWriter, filename string, table report.Table) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := table.WriteCSV(w); err != nil {
		// headers are gone at this point, the truncated body has to speak
		// for itself
		return
	}
}

func writeTableJSON(w http.ResponseWriter, table report.Table) {
	w.Header().Set("Content-Type", "application/json")
	table.WriteJSON(w)
}

// loadRecords reads the current snapshot; a corrupt checkpoint surfaces as a
// 500 rather than an empty table.
func (s *Server) loadRecords(w http.ResponseWriter) ([]snapshot.HierarchyRecord, bool) {
	records, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if records == nil {
		records = []snapshot.HierarchyRecord{}
	}
	return records, true
}

func (s *Server) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w)
	if !ok {
		return
	}
	writeTableJSON(w, report.HierarchyTable(records))
}

func (s *Server) handleHierarchyCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w)
	if !ok {
		return
	}
	writeCSV(w, "hierarchy_data.csv", report.HierarchyTable(records))
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w)
	if !ok {
		return
	}
	writeTableJSON(w, report.RoleMappingTable(hierarchy.RoleMappingsFromRecords(records)))
}

func (s *Server) handleRolesCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w)
	if !ok {
		return
	}
	writeCSV(w, "roles_mapping.csv", report.RoleMappingTable(hierarchy.RoleMappingsFromRecords(records)))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Summarize(records))
}
