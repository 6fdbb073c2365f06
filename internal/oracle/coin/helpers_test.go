package coin

import (
	"time"

	"cloud.google.com/go/civil"
)

var seedDate = civil.Date{Year: 2024, Month: time.January, Day: 1}
