package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netair/conciliador/internal/export"
	"github.com/netair/conciliador/internal/ingestion"
	"github.com/netair/conciliador/internal/reconciliation"
)

const maxUploadBytes = 64 << 20

// Handlers groups the HTTP handler methods and their dependencies.
type Handlers struct {
	ingestionSvc *ingestion.Service
	engine       *reconciliation.Engine
	log          *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Root is the liveness probe.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"service": "conciliador",
	})
}

// Health reports service health with a timestamp.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Reconcile accepts the multipart report set, runs the reconciliation and
// streams back the ZIP of import files. Bucket counts travel in X-Stats-*
// headers so clients can display them without unpacking the archive.
func (h *Handlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	log := h.log.With(zap.String("run_id", runID))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	files := make(map[string][]byte)
	for _, field := range []string{
		ingestion.FileSettlement,
		ingestion.FileSales,
		ingestion.FilePostSale,
		ingestion.FileReleases,
		ingestion.FileStatement,
		ingestion.FileWithdrawals,
	} {
		data, err := readFormFile(r, field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			writeError(w, http.StatusBadRequest, fmt.Sprintf("read %s: %v", field, err))
			return
		}
		files[field] = data
	}

	inputs, err := h.ingestionSvc.LoadAll(files)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, reconciliation.ErrMissingReport) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	result, err := h.engine.ReconcileWithCostCenter(inputs, r.FormValue("centro_custo"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	archive, names, err := export.Archive(result)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			writeError(w, http.StatusUnprocessableEntity, "no output files generated, check the input reports")
			return
		}
		log.Error("archive build failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build archive")
		return
	}

	log.Info("reconciliation complete",
		zap.Int("confirmed", result.Summary.Confirmed),
		zap.Int("forecast", result.Summary.Forecast),
		zap.Int("bill_payments", result.Summary.BillPayments),
		zap.Int("transfers", result.Summary.Transfers),
		zap.Int("unclassified", result.Summary.Unclassified),
		zap.Strings("files", names),
	)

	filename := fmt.Sprintf("conciliacao_%s.zip", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("X-Run-ID", runID)
	w.Header().Set("X-Stats-Confirmados", strconv.Itoa(result.Summary.Confirmed))
	w.Header().Set("X-Stats-Previsao", strconv.Itoa(result.Summary.Forecast))
	w.Header().Set("X-Stats-Pagamentos", strconv.Itoa(result.Summary.BillPayments))
	w.Header().Set("X-Stats-Transferencias", strconv.Itoa(result.Summary.Transfers))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil {
		log.Warn("client went away mid-download", zap.Error(err))
	}
}

func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)
	return io.ReadAll(file)
}
