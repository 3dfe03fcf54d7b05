package api

import (
	"net/http"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/service"
	"github.com/gin-gonic/gin"
)

func handleAvailability(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.MonthlyAvailability(c.Request.Context(), app.AvailabilityRequest{
			UserID: c.Param("id"),
			Month:  c.Query("month"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newAvailabilityView(resp.User, resp.Availability))
	}
}

func handleDaily(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.DailyAllocation(c.Request.Context(), app.DailyAllocationRequest{
			UserID: c.Param("id"),
			From:   c.Query("from"),
			To:     c.Query("to"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newDailyView(resp))
	}
}

func handleRelease(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.ReleaseDate(c.Request.Context(), app.ReleaseDateRequest{UserID: c.Param("id")})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newReleaseView(resp))
	}
}

func handleForecast(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.ForecastTask(c.Request.Context(), app.ForecastTaskRequest{
			TaskID: c.Param("id"),
			UserID: c.Query("user"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newForecastView(resp))
	}
}

func handleTeam(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.TeamOverview(c.Request.Context(), app.TeamOverviewRequest{Month: c.Query("month")})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newTeamView(resp))
	}
}

func handleTrend(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.SaturationTrend(c.Request.Context(), app.TrendRequest{})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newTrendView(resp))
	}
}

func handleElasticity(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.TeamElasticity(c.Request.Context(), app.ElasticityRequest{Month: c.Query("month")})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, elasticityView{Month: resp.Month, Percent: resp.Percent})
	}
}

type simulationBody struct {
	Hours float64 `json:"hours"`
}

func handleSimulation(svc service.CapacityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body simulationBody
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		resp, err := svc.SimulateImpact(c.Request.Context(), app.SimulationRequest{Hours: body.Hours})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newSimulationView(resp))
	}
}

type timesheetBody struct {
	TaskID string  `json:"task_id" binding:"required"`
	UserID string  `json:"user_id" binding:"required"`
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Note   string  `json:"note"`
}

func handleLogTimesheet(svc service.TimesheetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body timesheetBody
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		entry, err := svc.LogTimesheet(c.Request.Context(), app.LogTimesheetRequest{
			TaskID: body.TaskID,
			UserID: body.UserID,
			Date:   body.Date,
			Hours:  body.Hours,
			Note:   body.Note,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newTimesheetView(entry))
	}
}
