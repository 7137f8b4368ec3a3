package seed

// Demo fixture data: Philippine intercity routes and the ABC fleet.
// Distances in km, durations in minutes, fares in pesos.

type busRow struct {
	number   string
	capacity int
	routeID  int64
}

var demoRoutes = []routeRow{
	// From Manila
	{"Manila", "Baguio", 250, 360, 580.00},
	{"Manila", "Cebu", 700, 90, 1450.00},
	{"Manila", "Davao", 1500, 120, 2650.00},
	{"Manila", "Iloilo", 584, 80, 1250.00},
	{"Manila", "Bacolod", 600, 85, 1300.00},
	{"Manila", "Cagayan de Oro", 1200, 110, 2200.00},
	{"Manila", "Zamboanga", 1400, 130, 2500.00},
	{"Manila", "Puerto Princesa", 580, 80, 1200.00},
	{"Manila", "Legazpi", 350, 480, 620.00},
	{"Manila", "Vigan", 480, 600, 850.00},
	{"Manila", "Tuguegarao", 520, 660, 920.00},
	{"Manila", "Laoag", 580, 720, 1050.00},

	// From Quezon City
	{"Quezon City", "Tagaytay", 65, 120, 180.00},
	{"Quezon City", "Baguio", 245, 350, 560.00},
	{"Quezon City", "Subic", 120, 180, 320.00},
	{"Quezon City", "Bataan", 140, 200, 380.00},
	{"Quezon City", "Batangas", 110, 150, 300.00},
	{"Quezon City", "Lucena", 140, 180, 350.00},

	// From Cebu
	{"Cebu", "Tagbilaran", 70, 120, 280.00},
	{"Cebu", "Dumaguete", 180, 240, 420.00},
	{"Cebu", "Ormoc", 150, 180, 380.00},
	{"Cebu", "Tacloban", 200, 300, 480.00},
	{"Cebu", "Cagayan de Oro", 280, 360, 650.00},
	{"Cebu", "Butuan", 320, 420, 750.00},

	// From Davao
	{"Davao", "Cagayan de Oro", 250, 300, 580.00},
	{"Davao", "Butuan", 180, 240, 450.00},
	{"Davao", "Surigao", 280, 360, 620.00},
	{"Davao", "General Santos", 180, 240, 420.00},
	{"Davao", "Zamboanga", 350, 480, 780.00},

	// Regional Routes - Luzon
	{"Baguio", "Vigan", 280, 360, 520.00},
	{"Baguio", "Laoag", 350, 450, 680.00},
	{"Baguio", "Tuguegarao", 400, 540, 750.00},
	{"Baguio", "San Fernando", 60, 90, 150.00},
	{"Baguio", "Dagupan", 120, 180, 280.00},

	// Southern Luzon
	{"Batangas", "Tagaytay", 45, 60, 120.00},
	{"Batangas", "Puerto Princesa", 320, 420, 680.00},
	{"Lucena", "Naga", 180, 240, 420.00},
	{"Naga", "Legazpi", 120, 180, 320.00},
	{"Legazpi", "Sorsogon", 80, 120, 220.00},

	// Visayas Routes
	{"Iloilo", "Bacolod", 120, 150, 320.00},
	{"Iloilo", "Dumaguete", 200, 280, 480.00},
	{"Bacolod", "Dumaguete", 150, 200, 380.00},
	{"Tacloban", "Ormoc", 80, 120, 220.00},
	{"Catbalogan", "Tacloban", 120, 180, 320.00},

	// Mindanao Routes
	{"Cagayan de Oro", "Iligan", 60, 90, 180.00},
	{"Cagayan de Oro", "Butuan", 120, 180, 320.00},
	{"Cagayan de Oro", "Malaybalay", 80, 120, 220.00},
	{"General Santos", "Koronadal", 45, 60, 150.00},
	{"General Santos", "Kidapawan", 90, 120, 250.00},
	{"Zamboanga", "Pagadian", 120, 180, 320.00},
	{"Zamboanga", "Dipolog", 180, 240, 420.00},

	// Island connections (includes ferry time)
	{"Manila", "Caticlan", 380, 480, 750.00},
	{"Manila", "Tagbilaran", 650, 720, 1350.00},
	{"Manila", "Siquijor", 680, 780, 1450.00},
	{"Cebu", "Puerto Princesa", 450, 540, 950.00},

	// Northern Routes
	{"Tuguegarao", "Aparri", 80, 120, 220.00},
	{"Tuguegarao", "Ilagan", 60, 90, 180.00},
	{"Laoag", "Pagudpud", 45, 60, 150.00},
	{"Vigan", "Candon", 30, 45, 120.00},

	// Mountain Province Routes
	{"Baguio", "Sagada", 150, 240, 380.00},
	{"Baguio", "Bontoc", 120, 180, 320.00},
	{"Baguio", "Tabuk", 200, 300, 480.00},
}

var demoBuses = []busRow{
	// Manila routes
	{"ABC-001", 40, 1}, {"ABC-002", 40, 1}, {"ABC-003", 40, 1},
	{"ABC-004", 40, 2}, {"ABC-005", 40, 2},
	{"ABC-006", 40, 3}, {"ABC-007", 40, 3},
	{"ABC-008", 40, 4}, {"ABC-009", 40, 5}, {"ABC-010", 40, 6},
	{"ABC-011", 40, 7}, {"ABC-012", 40, 8}, {"ABC-013", 40, 9},
	{"ABC-014", 40, 10}, {"ABC-015", 40, 11}, {"ABC-016", 40, 12},

	// Quezon City routes
	{"QC-001", 40, 13}, {"QC-002", 40, 13}, {"QC-003", 40, 14},
	{"QC-004", 40, 15}, {"QC-005", 40, 16}, {"QC-006", 40, 17},
	{"QC-007", 40, 18},

	// Cebu routes
	{"CEB-001", 40, 19}, {"CEB-002", 40, 20}, {"CEB-003", 40, 21},
	{"CEB-004", 40, 22}, {"CEB-005", 40, 23}, {"CEB-006", 40, 24},

	// Davao routes
	{"DVO-001", 40, 25}, {"DVO-002", 40, 26}, {"DVO-003", 40, 27},
	{"DVO-004", 40, 28}, {"DVO-005", 40, 29},

	// Regional buses
	{"REG-001", 40, 30}, {"REG-002", 40, 31}, {"REG-003", 40, 32},
	{"REG-004", 40, 33}, {"REG-005", 40, 34}, {"REG-006", 40, 35},
	{"REG-007", 40, 36}, {"REG-008", 40, 37}, {"REG-009", 40, 38},
	{"REG-010", 40, 39}, {"REG-011", 40, 40}, {"REG-012", 40, 41},
}
