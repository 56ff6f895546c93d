package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/catalog"
)

const keepAliveInterval = 25 * time.Second

// CatalogController serves the live catalog
type CatalogController struct {
	watcher *catalog.Watcher
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(watcher *catalog.Watcher) *CatalogController {
	return &CatalogController{watcher: watcher}
}

// Get handles GET /catalog and returns the latest snapshot
func (c *CatalogController) Get(w http.ResponseWriter, r *http.Request) {
	snap, ok := c.watcher.Current()
	if !ok {
		response.Error(w, http.StatusServiceUnavailable, response.CodeInternalError, "catalog not loaded yet")
		return
	}
	response.JSON(w, http.StatusOK, snap)
}

// Stream handles GET /catalog/stream as server-sent events. Every catalog change is sent as a
// "catalog" event; the subscription ends when the client disconnects.
func (c *CatalogController) Stream(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CatalogStream: client connected from %s", r.RemoteAddr)

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		log.Printf("❌ CatalogStream: streaming unsupported: %v", err)
		return
	}

	updates, unsubscribe := c.watcher.Subscribe()
	defer unsubscribe()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("📤 CatalogStream: client %s disconnected", r.RemoteAddr)
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(snap)
			if err != nil {
				log.Printf("❌ CatalogStream: encode snapshot: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: catalog\ndata: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
