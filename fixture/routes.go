package fixture

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/fixturekit/errors"
)

// InstallRoutes registers the setup and teardown operations on a
// host-provided router:
//
//	GET /setup?select=a,b     load the selected (or all) fixtures
//	GET /teardown?select=a,b  re-synchronize the selected (or all) models
func (m *Manager) InstallRoutes(r gin.IRouter) {
	r.GET("/setup", m.SetupHandler())
	r.GET("/teardown", m.TeardownHandler())
}

// SetupHandler returns the handler for the setup operation. It responds
// "setup complete" on success, or the structured error payload when
// ErrorOnFailure is enabled and a load failed.
func (m *Manager) SetupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sel := Parse(c.Query("select"))

		if err := m.Setup(c.Request.Context(), sel); err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok {
				c.JSON(appErr.HTTPStatus, appErr.ToResponse())
				return
			}
			c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "setup complete"})
	}
}

// TeardownHandler returns the handler for the teardown operation. Teardown
// is best-effort, so the response is always "teardown complete"; partial
// failures are listed in the payload.
func (m *Manager) TeardownHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sel := Parse(c.Query("select"))

		report := m.Teardown(c.Request.Context(), sel)

		body := gin.H{"status": "teardown complete"}
		if !report.OK() {
			failed := make([]string, 0, len(report.Failures))
			for _, f := range report.Failures {
				failed = append(failed, f.Source)
			}
			body["failed_sources"] = failed
		}
		c.JSON(http.StatusOK, body)
	}
}
