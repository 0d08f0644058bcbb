package controllers

import (
	"net/http"
	"strconv"

	"publication-metrics-api/services"

	"github.com/gin-gonic/gin"
)

type KPIController struct {
	kpis *services.KPIService
}

func NewKPIController(kpis *services.KPIService) *KPIController {
	return &KPIController{kpis: kpis}
}

func parseYearOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return year
}

// GET /kpis?startYear=&endYear=
//
// The report shape is consumed directly by the external dashboard, so it is
// returned without the usual response envelope.
func (ctl *KPIController) GetKPIs(c *gin.Context) {
	startYear := parseYearOrDefault(c.Query("startYear"), services.UnboundedStartYear)
	endYear := parseYearOrDefault(c.Query("endYear"), services.UnboundedEndYear)

	report, err := ctl.kpis.Report(startYear, endYear)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
