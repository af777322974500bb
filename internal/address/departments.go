package address

// Departments and their municipalities accepted by the intake form.
var departments = []string{
	"AMAZONAS",
	"ANTIOQUIA",
	"ARAUCA",
	"ATLANTICO",
	"BOGOTA",
	"BOLIVAR",
	"BOYACA",
	"CALDAS",
	"CAQUETA",
	"CASANARE",
	"CAUCA",
	"CESAR",
	"CHOCO",
	"CORDOBA",
	"CUNDINAMARCA",
	"GUAINIA",
	"GUAVIARE",
	"HUILA",
	"LA GUAJIRA",
	"MAGDALENA",
	"META",
	"NARIÑO",
	"NORTE SANTANDER",
	"PUTUMAYO",
	"QUINDIO",
	"RISARALDA",
	"SAN ANDRES",
	"SANTANDER",
	"SUCRE",
	"TOLIMA",
	"VALLE",
	"VAUPES",
	"VICHADA",
}

var citiesByDepartment = map[string][]string{
	"AMAZONAS": {
		"LETICIA", "PUERTO NARIÑO",
	},
	"ANTIOQUIA": {
		"MEDELLIN", "ABEJORRAL", "ABRIAQUI", "ALEJANDRIA", "AMAGA", "AMALFI",
		"ANDES", "ANGELOPOLIS", "ANGOSTURA", "ANORI", "ANZA", "APARTADO",
		"ARBOLETES", "ARGELIA", "ARMENIA", "BARBOSA", "BELLO", "BELMIRA",
		"BETANIA", "BETULIA", "BRICEÑO", "BURITICA", "CACERES", "CAICEDO",
		"CALDAS", "CAMPAMENTO", "CARACOLI", "CARAMANTA", "CAREPA", "CAROLINA",
		"CAUCASIA", "CAÑASGORDAS", "CHIGORODO", "CISNEROS", "CIUDAD BOLIVAR", "COCORNA",
		"CONCEPCION", "CONCORDIA", "COPACABANA", "DABEIBA", "DON MATIAS", "EBEJICO",
		"EL BAGRE", "EL CARMEN DE VIBORAL", "EL SANTUARIO", "ENTRERRIOS", "ENVIGADO", "FREDONIA",
		"FRONTINO", "GIRALDO", "GIRARDOTA", "GOMEZ PLATA", "GRANADA", "GUADALUPE",
		"GUARNE", "GUATAPE", "HELICONIA", "HISPANIA", "ITAGUI", "ITUANGO",
		"JARDIN", "JERICO", "LA CEJA", "LA ESTRELLA", "LA PINTADA", "LA UNION",
		"LIBORINA", "MACEO", "MARINILLA", "MONTEBELLO", "MURINDO", "MUTATA",
		"NARIÑO", "NECHI", "NECOCLI", "OLAYA", "PEQUE", "PEÑOL",
		"PUEBLORRICO", "PUERTO BERRIO", "PUERTO NARE", "PUERTO TRIUNFO", "REMEDIOS", "RETIRO",
		"RIONEGRO", "SABANALARGA", "SABANETA", "SALGAR", "SAN ANDRES", "SAN CARLOS",
		"SAN FRANCISCO", "SAN JERONIMO", "SAN JOSE DE LA MONTAÑA", "SAN JUAN DE URABA", "SAN LUIS", "SAN PEDRO",
		"SAN PEDRO DE URABA", "SAN RAFAEL", "SAN ROQUE", "SAN VICENTE", "SANTA BARBARA", "SANTA ROSA DE OSOS",
		"SANTAFE DE ANTIOQUIA", "SANTO DOMINGO", "SEGOVIA", "SONSON", "SOPETRAN", "TAMESIS",
		"TARAZA", "TARSO", "TITIRIBI", "TOLEDO", "TURBO", "URAMITA",
		"URRAO", "VALDIVIA", "VALPARAISO", "VEGACHI", "VENECIA", "VIGIA DEL FUERTE",
		"YALI", "YARUMAL", "YOLOMBO", "YONDO", "ZARAGOZA",
	},
	"ARAUCA": {
		"ARAUCA", "ARAUQUITA", "CRAVO NORTE", "FORTUL", "PUERTO RONDON", "SARAVENA",
		"TAME",
	},
	"ATLANTICO": {
		"BARRANQUILLA", "BARANOA", "CAMPO DE LA CRUZ", "CANDELARIA", "GALAPA", "JUAN DE ACOSTA",
		"LURUACO", "MALAMBO", "MANATI", "PALMAR DE VARELA", "PIOJO", "POLONUEVO",
		"PONEDERA", "PUERTO COLOMBIA", "REPELON", "SABANAGRANDE", "SABANALARGA", "SANTA LUCIA",
		"SANTO TOMAS", "SOLEDAD", "SUAN", "TUBARA", "USIACURI",
	},
	"BOGOTA": {
		"BOGOTA D.C.",
	},
	"BOLIVAR": {
		"CARTAGENA", "ACHI", "ALTOS DEL ROSARIO", "ARENAL", "ARJONA", "ARROYOHONDO",
		"BARRANCO DE LOBA", "BRAZUELO DE PAPAYAL", "CALAMAR", "CANTAGALLO", "CICUCO", "CLEMENCIA",
		"CORDOBA", "EL CARMEN DE BOLIVAR", "EL GUAMO", "EL PEÑON", "HATILLO DE LOBA", "MAGANGUE",
		"MAHATES", "MARGARITA", "MARIA LA BAJA", "MONTECRISTO", "MORALES", "NOROSI",
		"PINILLOS", "REGIDOR", "RIO VIEJO", "SAN CRISTOBAL", "SAN ESTANISLAO", "SAN FERNANDO",
		"SAN JACINTO", "SAN JACINTO DEL CAUCA", "SAN JUAN NEPOMUCENO", "SAN MARTIN DE LOBA", "SAN PABLO", "SANTA CATALINA",
		"SANTA CRUZ DE MOMPOX", "SANTA ROSA", "SANTA ROSA DEL SUR", "SIMITI", "SOPLAVIENTO", "TALAIGUA NUEVO",
		"TIQUISIO", "TURBACO", "TURBANA", "VILLANUEVA", "ZAMBRANO",
	},
	"BOYACA": {
		"TUNJA", "DUITAMA", "SOGAMOSO", "CHIQUINQUIRA", "PAIPA",
	},
	"CALDAS": {
		"MANIZALES", "LA DORADA", "CHINCHINA", "VILLAMARIA", "RIOSUCIO",
	},
	"CAQUETA": {
		"FLORENCIA", "SAN VICENTE DEL CAGUAN", "CARTAGENA DEL CHAIRA",
	},
	"CASANARE": {
		"YOPAL", "AGUAZUL", "VILLANUEVA", "PAZ DE ARIPORO",
	},
	"CAUCA": {
		"POPAYAN", "SANTANDER DE QUILICHAO", "PIENDAMO", "TIMBIO",
	},
	"CESAR": {
		"VALLEDUPAR", "AGUACHICA", "AGUSTIN CODAZZI", "BOSCONIA",
	},
	"CHOCO": {
		"QUIBDO", "ISTMINA", "TADO", "CONDOTO",
	},
	"CORDOBA": {
		"MONTERIA", "CERETE", "SAHAGUN", "LORICA", "PLANETA RICA",
	},
	"CUNDINAMARCA": {
		"AGUA DE DIOS", "ALBAN", "ANAPOIMA", "ANOLAIMA", "APULO", "ARBELAEZ",
		"BELTRAN", "BITUIMA", "BOJACA", "CABRERA", "CACHIPAY", "CAJICA",
		"CAPARRAPI", "CAQUEZA", "CARMEN DE CARUPA", "CHAGUANI", "CHIA", "CHIPAQUE",
		"CHOACHI", "CHOCONTA", "COGUA", "COTA", "CUCUNUBA", "EL COLEGIO",
		"EL PEÑON", "EL ROSAL", "FACATATIVA", "FOMEQUE", "FOSCA", "FUNZA",
		"FUQUENE", "FUSAGASUGA", "GACHALA", "GACHANCIPA", "GACHETA", "GAMA",
		"GIRARDOT", "GRANADA", "GUACHETA", "GUADUAS", "GUASCA", "GUATAQUI",
		"GUATAVITA", "GUAYABAL DE SIQUIMA", "GUAYABETAL", "GUTIERREZ", "JERUSALEN", "JUNIN",
		"LA CALERA", "LA MESA", "LA PALMA", "LA PEÑA", "LA VEGA", "LENGUAZAQUE",
		"MACHETA", "MADRID", "MANTA", "MEDINA", "MOSQUERA", "NARIÑO",
		"NEMOCON", "NILO", "NIMAIMA", "NOCAIMA", "VENECIA", "PACHO",
		"PAIME", "PANDI", "PARATEBUENO", "PASCA", "PULI", "QUEBRADANEGRA",
		"QUETAME", "QUIPILE", "RAFAEL REYES", "RICAURTE", "SAN ANTONIO DEL TEQUENDAMA", "SAN BERNARDO",
		"SAN CAYETANO", "SAN FRANCISCO", "SAN JUAN DE RIO SECO", "SASAIMA", "SESQUILE", "SIBATE",
		"SILVANIA", "SIMIJACA", "SOACHA", "SOPO", "SUBACHOQUE", "SUESCA",
		"SUPATA", "SUSA", "SUTATAUSA", "TABIO", "TAUSA", "TENA",
		"TENJO", "TIBACUY", "TIBIRITA", "TOCAIMA", "TOCANCIPA", "TOPAIPI",
		"UBALA", "UBAQUE", "VILLA DE SAN DIEGO DE UBATE", "UNE", "UTICA", "VERGARA",
		"VIANI", "VILLA GOMEZ", "VILLAPINZON", "VILLETA", "VIOTA", "YACOPI",
		"ZIPACON", "ZIPAQUIRA",
	},
	"GUAINIA": {
		"INIRIDA",
	},
	"GUAVIARE": {
		"SAN JOSE DEL GUAVIARE",
	},
	"HUILA": {
		"NEIVA", "PITALITO", "GARZON", "LA PLATA",
	},
	"LA GUAJIRA": {
		"RIOHACHA", "MAICAO", "URIBIA", "FONSECA",
	},
	"MAGDALENA": {
		"SANTA MARTA", "CIENAGA", "FUNDACION", "PLATO",
	},
	"META": {
		"VILLAVICENCIO", "ACACIAS", "GRANADA", "PUERTO LOPEZ",
	},
	"NARIÑO": {
		"PASTO", "TUMACO", "IPIALES", "LA UNION",
	},
	"NORTE SANTANDER": {
		"CUCUTA", "OCAÑA", "PAMPLONA", "VILLA DEL ROSARIO",
	},
	"PUTUMAYO": {
		"MOCOA", "PUERTO ASIS", "ORITO", "VALLE DEL GUAMUEZ",
	},
	"QUINDIO": {
		"ARMENIA", "CALARCA", "MONTENEGRO", "QUIMBAYA",
	},
	"RISARALDA": {
		"PEREIRA", "DOSQUEBRADAS", "SANTA ROSA DE CABAL", "LA VIRGINIA",
	},
	"SAN ANDRES": {
		"SAN ANDRES", "PROVIDENCIA",
	},
	"SANTANDER": {
		"BUCARAMANGA", "FLORIDABLANCA", "GIRON", "PIEDECUESTA", "BARRANCABERMEJA",
	},
	"SUCRE": {
		"SINCELEJO", "COROZAL", "OVEJAS", "SAMPUES",
	},
	"TOLIMA": {
		"IBAGUE", "ESPINAL", "MELGAR", "HONDA",
	},
	"VALLE": {
		"CALI", "ALCALA", "ANDALUCIA", "ANSERMANUEVO", "ARGELIA", "BOLIVAR",
		"BUENAVENTURA", "BUGA", "BUGALAGRANDE", "CAICEDONIA", "CALIMA", "CANDELARIA",
		"CARTAGO", "DAGUA", "EL AGUILA", "EL CAIRO", "EL CERRITO", "EL DOVIO",
		"FLORIDA", "GINEBRA", "GUACARI", "GUADALAJARA DE BUGA", "JAMUNDI", "LA CUMBRE",
		"LA UNION", "LA VICTORIA", "OBANDO", "PALMIRA", "PRADERA", "RESTREPO",
		"RIO FRIO", "ROLDANILLO", "SAN PEDRO", "SEVILLA", "TORO", "TRUJILLO",
		"TULUA", "ULLOA", "VERSALLES", "VIJES", "YOTOCO", "YUMBO",
		"ZARZAL",
	},
	"VAUPES": {
		"MITU",
	},
	"VICHADA": {
		"PUERTO CARREÑO",
	},
}
