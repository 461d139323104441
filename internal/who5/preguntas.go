package who5

// Opcion 单题选项
type Opcion struct {
	Valor int    `json:"valor"`
	Label string `json:"label"`
}

// Pregunta WHO-5 题目
type Pregunta struct {
	Numero   int      `json:"numero"`
	Texto    string   `json:"texto"`
	Opciones []Opcion `json:"opciones"`
}

// 标准选项（所有题目共用，按分值从高到低展示）
var opcionesEstandar = []Opcion{
	{Valor: 5, Label: "Todo el tiempo"},
	{Valor: 4, Label: "La mayor parte del tiempo"},
	{Valor: 3, Label: "Más de la mitad del tiempo"},
	{Valor: 2, Label: "Menos de la mitad del tiempo"},
	{Valor: 1, Label: "De vez en cuando"},
	{Valor: 0, Label: "Nunca"},
}

var preguntas = []Pregunta{
	{Numero: 1, Texto: "Me he sentido alegre y de buen humor", Opciones: opcionesEstandar},
	{Numero: 2, Texto: "Me he sentido tranquilo y relajado", Opciones: opcionesEstandar},
	{Numero: 3, Texto: "Me he sentido activo y enérgico", Opciones: opcionesEstandar},
	{Numero: 4, Texto: "Me he despertado fresco y descansado", Opciones: opcionesEstandar},
	{Numero: 5, Texto: "Mi vida cotidiana ha estado llena de cosas que me interesan", Opciones: opcionesEstandar},
}

// Preguntas 返回 WHO-5 官方五道题（西班牙语版）
func Preguntas() []Pregunta {
	return preguntas
}
