package model

// ForecastResult carries the computed income figures for one request.
// All monetary and percentage values are rounded to 2 decimal places.
// The custom fields are present only when the request supplied custom
// growth factors.
type ForecastResult struct {
	Income2025       float64  `json:"income_2025"`
	Income2030OBR    float64  `json:"income_2030_obr"`
	Income2030Autumn float64  `json:"income_2030_autumn"`
	Income2030Custom *float64 `json:"income_2030_custom,omitempty"`

	AbsoluteChangeOBR            float64 `json:"absolute_change_obr"`
	PercentageChangeOBR          float64 `json:"percentage_change_obr"`
	ForecastDifference           float64 `json:"forecast_difference"`
	ForecastPercentageDifference float64 `json:"forecast_percentage_difference"`

	AbsoluteChangeCustom   *float64 `json:"absolute_change_custom,omitempty"`
	PercentageChangeCustom *float64 `json:"percentage_change_custom,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeAgeBelowMinimum      = "AGE_BELOW_MINIMUM"
	CodeUnknownIncomeSource  = "UNKNOWN_INCOME_SOURCE"
	CodeNoMatchingHousehold  = "NO_MATCHING_HOUSEHOLD"
	CodeInsufficientChildren = "INSUFFICIENT_CHILDREN"
	CodeEngineFailure        = "SIMULATION_ENGINE_FAILURE"
	CodeInternal             = "INTERNAL_ERROR"
)
