package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilityapp "staybook/internal/app/handlers/availability"
	"staybook/internal/app/queries"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	query := availabilityapp.GetCalendarQuery{
		VenueID:       c.Param("id"),
		ExcludeStayID: c.Query("exclude"),
	}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, *availabilityapp.GetCalendarResult](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
