package rest

import (
	"fmt"
	"net/http"

	"github.com/spaethfarms/storefront/pkg/web"
)

// ContentSection serves a content document (or a sub-view of one) by name.
// Sections: site, settings, hero, testimonials.
func (h *Handler) ContentSection(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	section := r.PathValue("section")
	switch section {
	case "site":
		web.RespondJSON(w, mLogger, http.StatusOK, h.content.SiteContent())
	case "settings":
		web.RespondJSON(w, mLogger, http.StatusOK, h.content.Settings())
	case "hero":
		web.RespondJSON(w, mLogger, http.StatusOK, h.content.SiteContent().Hero)
	case "testimonials":
		web.RespondJSON(w, mLogger, http.StatusOK, h.content.SiteContent().Testimonials)
	default:
		mLogger.WarnContext(r.Context(), "Unknown content section", "section", section)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Unknown content section: %s", section))
	}
}
