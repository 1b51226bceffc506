package constants

// Column names of the upload schema, in template order.
var RequiredColumns = []string{
	"startOfOrder",
	"productionLine",
	"partNumber",
	"plannedProductionTime",
	"actualProductionTime",
	"idealCycleTime",
	"totalPieces",
	"goodPieces",
	"plannedDowntime",
	"unplannedDowntime",
}

var NumericColumns = []string{
	"plannedProductionTime",
	"actualProductionTime",
	"idealCycleTime",
	"totalPieces",
	"goodPieces",
	"plannedDowntime",
	"unplannedDowntime",
}

var IdentifierColumns = []string{
	"productionLine",
	"partNumber",
}

const DateColumn = "startOfOrder"
