package thematique

// Built-in vocabulary for the thermal-sciences congress. Kept as the
// fallback when no THEMATIQUES_FILE is configured.
var defaultThematiques = []Thematique{
	{Code: "COND", Name: "Conduction, convection, rayonnement", Description: "Transferts de chaleur par conduction, convection et rayonnement", Color: "#dc3545"},
	{Code: "MULTI", Name: "Changement de phase et transferts multiphasiques", Description: "Phénomènes de changement de phase et écoulements multiphasiques", Color: "#20c997"},
	{Code: "POREUX", Name: "Transferts en milieux poreux", Description: "Transferts de masse et de chaleur en milieux poreux", Color: "#0dcaf0"},
	{Code: "MICRO", Name: "Micro et nanothermique", Description: "Transferts thermiques à l'échelle micro et nanométrique", Color: "#198754"},
	{Code: "BIO", Name: "Thermique du vivant", Description: "Applications thermiques dans le domaine du vivant", Color: "#fd7e14"},
	{Code: "SYST", Name: "Énergétique des systèmes", Description: "Énergétique et optimisation des systèmes", Color: "#d63384"},
	{Code: "COMBUST", Name: "Combustion et flammes", Description: "Phénomènes de combustion et étude des flammes", Color: "#ff6b35"},
	{Code: "MACHINE", Name: "Machines thermiques et frigorifiques", Description: "Machines thermiques, pompes à chaleur, systèmes frigorifiques", Color: "#007bff"},
	{Code: "ECHANG", Name: "Échangeurs de chaleur", Description: "Conception et optimisation des échangeurs de chaleur", Color: "#6f42c1"},
	{Code: "STOCK", Name: "Stockage thermique", Description: "Technologies de stockage de l'énergie thermique", Color: "#6610f2"},
	{Code: "RENOUV", Name: "Énergies renouvelables", Description: "Applications thermiques des énergies renouvelables", Color: "#28a745"},
	{Code: "BATIM", Name: "Thermique du bâtiment", Description: "Efficacité énergétique et confort thermique des bâtiments", Color: "#ffc107"},
	{Code: "INDUS", Name: "Thermique industrielle", Description: "Applications thermiques dans l'industrie", Color: "#17a2b8"},
	{Code: "METRO", Name: "Métrologie et techniques inverses", Description: "Mesures thermiques et méthodes inverses", Color: "#6c757d"},
	{Code: "SIMUL", Name: "Modélisation et simulation numérique", Description: "Méthodes numériques et modélisation en thermique", Color: "#343a40"},
}
