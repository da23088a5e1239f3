package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysApiLog{},
	// Storefront
	&Tenant{},
	&Product{},
}
