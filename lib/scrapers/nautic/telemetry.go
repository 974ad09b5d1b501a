package nautic

import (
	"yachtdrop-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("yachtdrop.lib.scrapers.nautic")
