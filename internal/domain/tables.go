package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Menu
	&Category{},
	&Product{},
	// Pages
	&Event{},
	&HomeSection{},
	&ContactMessage{},
}
