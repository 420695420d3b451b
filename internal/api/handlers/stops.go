package handlers

import (
	"io"
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ingest"
	"route-optimizer-service/internal/ports"
)

const maxUploadBytes = 16 << 20

// StopHandler exposes the stop upload and retrieval endpoints.
type StopHandler struct {
	Repo ports.StopRepository
}

func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		log.Printf("list stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStopsResponse{Stops: make([]dto.StopResponse, 0, len(stops))}
	for _, s := range stops {
		res.Stops = append(res.Stops, stopToDTO(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Upload replaces the stored stop set with the stops parsed from an
// uploaded CSV file. The file must arrive as the multipart field "file".
func (h *StopHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	records, err := ingest.ParseStops(data)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	stops := make([]domain.Stop, 0, len(records))
	for _, rec := range records {
		stops = append(stops, domain.Stop{
			Name:     rec.Name,
			Address:  rec.Address,
			Locality: rec.Locality,
			WeightKg: rec.WeightKg,
			VolumeM3: rec.VolumeM3,
			Coord:    domain.Coordinates{Lat: rec.Lat, Lng: rec.Lng},
		})
	}

	if err := h.Repo.ReplaceStops(r.Context(), stops); err != nil {
		log.Printf("replace stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.UploadStopsResponse{StopCount: len(stops)})
}
