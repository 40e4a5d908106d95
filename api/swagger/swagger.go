package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Timetable API",
        "description": "Constraint-based weekly class timetable generator with hard-constraint validation of external proposals",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/schedules/generate": {
            "post": {
                "summary": "Generate a schedule version",
                "responses": {
                    "200": {
                        "description": "Solve outcome: solved and persisted, or success false with a reason and message when no schedule was produced"
                    },
                    "400": {
                        "description": "Invalid payload"
                    }
                }
            }
        },
        "/schedules/generate/async": {
            "post": {
                "summary": "Queue a schedule generation job",
                "responses": {
                    "202": {
                        "description": "Job accepted"
                    }
                }
            }
        },
        "/schedules/optimize": {
            "post": {
                "summary": "Apply an externally proposed re-optimization",
                "responses": {
                    "200": {
                        "description": "Validated and persisted as a new version"
                    },
                    "422": {
                        "description": "Proposal violates a hard constraint"
                    }
                }
            }
        },
        "/schedules/versions/{id}/export": {
            "get": {
                "summary": "Export a schedule version as a CSV or PDF grid",
                "responses": {
                    "200": {
                        "description": "Signed download link"
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
