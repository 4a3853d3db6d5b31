package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// StaticAsset serves files out of the local store: layout base images for
// the storefront and composed previews. Keys are sanitized by the store,
// so traversal cannot escape the storage root.
func (a *App) StaticAsset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	path, err := a.Store.Resolve(key)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid asset key")
		return
	}
	if _, err := os.Stat(path); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "asset not found")
		return
	}
	http.ServeFile(w, r, path)
}
