package catalog

// AppName is shown in the header and used as the default window title
const AppName = "PsyQuotes"

var builtinQuotes = []Quote{
	{
		ID:       "F-001",
		Text:     "El encuentro de dos personalidades es como el contacto de dos sustancias químicas: si hay alguna reacción, ambas se transforman.",
		Author:   "Carl Jung",
		Book:     "Los Arquetipos y el Inconsciente Colectivo",
		Category: Unconscious,
		VisualID: "quimica-transformacion",
	},
	{
		ID:       "F-002",
		Text:     "Cuando ya no somos capaces de cambiar una situación, nos encontramos ante el desafío de cambiarnos a nosotros mismos.",
		Author:   "Viktor Frankl",
		Book:     "El hombre en busca de sentido",
		Category: Motivation,
		VisualID: "camino-invierno-resistencia",
	},
	{
		ID:       "F-003",
		Text:     "Las emociones inexpresadas nunca mueren. Son enterradas vivas y salen más tarde de peores formas.",
		Author:   "Sigmund Freud",
		Book:     "Estudios sobre la histeria",
		Category: Behavior,
		VisualID: "sombras-emergiendo-subsuelo",
	},
	{
		ID:       "F-004",
		Text:     "Quien tiene un porqué para vivir puede soportar casi cualquier cómo.",
		Author:   "Friedrich Nietzsche",
		Book:     "El crepúsculo de los ídolos",
		Category: Motivation,
		VisualID: "luz-al-final-tunel",
	},
	{
		ID:       "F-005",
		Text:     "Todo lo que nos irrita de los demás puede llevarnos a un entendimiento de nosotros mismos.",
		Author:   "Carl Jung",
		Book:     "Memorias, sueños, reflexiones",
		Category: Unconscious,
		VisualID: "espejo-reflejo-distorsionado",
	},
	{
		ID:       "F-006",
		Text:     "La curiosa paradoja es que cuando me acepto tal como soy, entonces puedo cambiar.",
		Author:   "Carl Rogers",
		Book:     "El proceso de convertirse en persona",
		Category: Behavior,
		VisualID: "metamorfosis-suave-agua",
	},
	{
		ID:       "F-007",
		Text:     "No somos lo que nos ha pasado, somos lo que decidimos ser.",
		Author:   "Carl Jung",
		Book:     "Obras Completas",
		Category: Motivation,
		VisualID: "fenix-renacer-cenizas",
	},
	{
		ID:       "F-008",
		Text:     "La mente es como un iceberg, flota con una séptima parte de su materia sobre el agua.",
		Author:   "Sigmund Freud",
		Book:     "El yo y el ello",
		Category: Unconscious,
		VisualID: "iceberg-profundo-oceano",
	},
}
