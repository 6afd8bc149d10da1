package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// handleListDevices returns every device in slot order with its version,
// operations and current state.
func (s *Server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	devices := s.hub.DeviceInfos()
	writeJSON(w, http.StatusOK, map[string]any{
		"devices": devices,
		"count":   len(devices),
	})
}

// handleGetDevice returns the device at the slot index in the URL.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	index, ok := deviceIndex(w, r)
	if !ok {
		return
	}

	info, err := s.hub.DeviceInfo(index)
	if err != nil {
		s.writeDeviceError(w, index, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleListOperations returns the operation names of one device, as the
// control device reports them.
func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	index, ok := deviceIndex(w, r)
	if !ok {
		return
	}

	ops, err := s.hub.ListOperations(index)
	if err != nil {
		s.writeDeviceError(w, index, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"index":      index,
		"operations": ops,
	})
}

// deviceIndex parses the {index} URL parameter, writing a 400 on failure.
func deviceIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeBadRequest(w, "device index must be an integer")
		return 0, false
	}
	return index, true
}

func (s *Server) writeDeviceError(w http.ResponseWriter, index int, err error) {
	if errors.Is(err, device.ErrIndexOutOfRange) {
		writeNotFound(w, "no device at index "+strconv.Itoa(index))
		return
	}
	s.logger.Error("device query failed", "index", index, "error", err)
	writeInternalError(w, "device query failed")
}
