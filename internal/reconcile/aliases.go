package reconcile

// Ordered source-key aliases per canonical field. First key present with a
// non-empty value wins. Adding a new backend alias is an edit here, not a
// new code branch.
var (
	aliasID          = []string{"id", "_id", "bus_id"}
	aliasBusNumber   = []string{"busNumber", "bus_number", "busNo", "code"}
	aliasRoute       = []string{"route", "route_name"}
	aliasOrigin      = []string{"origin"}
	aliasDestination = []string{"destination", "registered_destination", "registeredDestination"}
	aliasCompany     = []string{"bus_name", "busCompany", "operator", "company"}
	aliasStatus      = []string{"status"}
	aliasPlate       = []string{"plate_number", "plateNumber"}
	aliasCapacity    = []string{"capacity", "seats"}
	aliasAttendant   = []string{"attendant_name", "busAttendant", "bus_attendant"}
	aliasAttendantID = []string{"attendant_id", "attendantId"}
	aliasEmail       = []string{"company_email", "busCompanyEmail"}
	aliasContact     = []string{"company_contact", "busCompanyContact"}
	aliasPhoto       = []string{"busPhoto", "bus_photo", "photo_url"}
	aliasBoarded     = []string{"boarded_count", "qnext_count", "qnextBoarded"}
	aliasPriority    = []string{"priority_seat", "prioritySeat"}
	aliasUpdated     = []string{"updated_at", "arrived_at", "created_at", "lastUpdated"}
)
