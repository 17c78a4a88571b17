// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Package docs is generated by swaggo/swag from the handler annotations in
// internal/api. Regenerate with: swag init -g cmd/server/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/rozgar/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/bihar": {
            "get": {
                "description": "Returns one row per district and month. When nothing is stored for the year, one ingestion from the upstream dataset runs before the store is read again; the response then holds whatever that ingestion wrote, possibly nothing.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Metrics"
                ],
                "summary": "List district metrics for a financial year",
                "parameters": [
                    {
                        "type": "string",
                        "example": "2024-2025",
                        "description": "Financial year as YYYY-YYYY (default: newest stored year)",
                        "name": "fin_year",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.YearListResponse"
                        }
                    },
                    "400": {
                        "description": "Malformed fin_year",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Store failure",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/meta": {
            "get": {
                "description": "Distinct financial years (newest first) and districts (by name). Reads only what is stored and never triggers ingestion.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Metrics"
                ],
                "summary": "Selector metadata",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Meta"
                        }
                    },
                    "500": {
                        "description": "Store failure",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/data": {
            "get": {
                "description": "Rows sorted by fiscal month (April first) plus a summary and the per-month metrics. When nothing is stored, one ingestion of the year runs first; 404 if the district is still absent.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Metrics"
                ],
                "summary": "District detail",
                "parameters": [
                    {
                        "type": "string",
                        "example": "0515",
                        "description": "District code",
                        "name": "district_code",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "example": "2023-2024",
                        "description": "Financial year as YYYY-YYYY",
                        "name": "fin_year",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.DistrictDataResponse"
                        }
                    },
                    "400": {
                        "description": "Missing or malformed parameters",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "No data for the district and year",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Store failure",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/sync": {
            "post": {
                "description": "Pages the upstream dataset for the year and upserts every record. Blocks until the run ends. A partial run (some pages written before an error) is still 200.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sync"
                ],
                "summary": "Run an ingestion now",
                "parameters": [
                    {
                        "type": "string",
                        "example": "2024-2025",
                        "description": "Financial year as YYYY-YYYY (default: newest stored year)",
                        "name": "fin_year",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SyncRun"
                        }
                    },
                    "400": {
                        "description": "Malformed fin_year",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too many manual syncs",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Run failed before writing anything",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Upstream not configured",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/sync/runs": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sync"
                ],
                "summary": "Recent ingestion runs",
                "parameters": [
                    {
                        "type": "integer",
                        "default": 20,
                        "description": "Maximum runs to return (1-200)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SyncRunsResponse"
                        }
                    },
                    "400": {
                        "description": "Malformed limit",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Store failure",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "description": "Returns 200 while the process is up, regardless of dependencies.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Core"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.HealthResponse"
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Returns 200 when the store answers a ping, 503 otherwise. The upstream breaker state is informational.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Core"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/models.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "No data found for the requested district/fin_year"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "ok"
                },
                "database": {
                    "type": "string",
                    "example": "duckdb"
                },
                "upstream": {
                    "type": "string",
                    "example": "closed"
                },
                "uptime_seconds": {
                    "type": "integer",
                    "example": 3600
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "models.DistrictRef": {
            "type": "object",
            "properties": {
                "district_code": {
                    "type": "string",
                    "example": "0515"
                },
                "district_name": {
                    "type": "string",
                    "example": "PATNA"
                }
            }
        },
        "models.Meta": {
            "type": "object",
            "properties": {
                "fin_years": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "districts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.DistrictRef"
                    }
                }
            }
        },
        "models.Metrics": {
            "type": "object",
            "additionalProperties": true,
            "description": "Flat upstream record: Total_Exp, Total_Households_Worked, Women_Persondays, Persondays_of_Central_Liability_so_far, Average_Wage_rate_per_day_per_person and every other field the dataset publishes."
        },
        "models.MetricRecord": {
            "type": "object",
            "properties": {
                "district_code": {
                    "type": "string"
                },
                "district_name": {
                    "type": "string"
                },
                "fin_year": {
                    "type": "string"
                },
                "month": {
                    "type": "string",
                    "example": "Apr"
                },
                "metrics": {
                    "$ref": "#/definitions/models.Metrics"
                },
                "last_updated": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "models.YearListResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "ok"
                },
                "count": {
                    "type": "integer",
                    "example": 456
                },
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.MetricRecord"
                    }
                }
            }
        },
        "models.DistrictTotals": {
            "type": "object",
            "properties": {
                "total_expenditure": {
                    "type": "number"
                },
                "total_households_worked": {
                    "type": "number"
                },
                "women_persondays": {
                    "type": "number"
                },
                "central_liability_persondays": {
                    "type": "number"
                },
                "average_wage_rate": {
                    "type": "number"
                }
            }
        },
        "models.DistrictSummary": {
            "type": "object",
            "properties": {
                "district_code": {
                    "type": "string"
                },
                "district_name": {
                    "type": "string"
                },
                "fin_year": {
                    "type": "string"
                },
                "records_count": {
                    "type": "integer"
                },
                "first_month": {
                    "type": "string"
                },
                "last_month": {
                    "type": "string"
                },
                "last_updated": {
                    "type": "string",
                    "format": "date-time"
                },
                "totals": {
                    "$ref": "#/definitions/models.DistrictTotals"
                }
            }
        },
        "models.DistrictDataResponse": {
            "type": "object",
            "properties": {
                "summary": {
                    "$ref": "#/definitions/models.DistrictSummary"
                },
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.MetricRecord"
                    }
                },
                "metrics": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Metrics"
                    }
                }
            }
        },
        "models.SyncRun": {
            "type": "object",
            "properties": {
                "run_id": {
                    "type": "string",
                    "example": "01JB3Q2K6Z8Y5W4V3T2S1R0P9N"
                },
                "fin_year": {
                    "type": "string"
                },
                "trigger": {
                    "type": "string",
                    "enum": [
                        "request",
                        "schedule",
                        "seed",
                        "manual"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "running",
                        "success",
                        "partial",
                        "failed",
                        "skipped"
                    ]
                },
                "started_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "finished_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "pages": {
                    "type": "integer"
                },
                "records": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                },
                "upstream_total": {
                    "type": "integer"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "models.SyncRunsResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "runs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.SyncRun"
                    }
                }
            }
        }
    },
    "tags": [
        {
            "name": "Metrics",
            "description": "District-month MGNREGA statistics"
        },
        {
            "name": "Sync",
            "description": "Ingestion runs from the upstream dataset"
        },
        {
            "name": "Core",
            "description": "Health probes"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Rozgar API",
	Description:      "MGNREGA district employment metrics for Bihar, ingested from the data.gov.in resource and served for the dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
