package model

import "encoding/json"

// DefaultSettings returns the settings record seeded on first boot.
func DefaultSettings() Settings {
	return Settings{
		Nome:     "Dr. Perito Judicial",
		CRM:      "CRM-XX 00000",
		Endereco: "",
		Telefone: "",
	}
}

// DefaultMacros is the macro set seeded when the macro collection is empty.
var DefaultMacros = []Macro{
	{
		ID:        "def_1",
		Titulo:    "Anamnese - Dor Lombar",
		Categoria: "anamnese",
		Conteudo: "Paciente refere dor lombar crônica, irradiada para membro inferior esquerdo, " +
			"com piora aos esforços físicos e melhora ao repouso. Nega trauma recente. Relata uso " +
			"de analgésicos e anti-inflamatórios sem melhora significativa.",
	},
	{
		ID:        "def_2",
		Titulo:    "Exame Físico - Coluna Lombar",
		Categoria: "exame_fisico",
		Conteudo: "Deambulação normal, sem claudicação. Mobilidade da coluna lombar preservada, " +
			"com dor à flexão máxima. Lasègue negativo bilateralmente. Reflexos patelares e aquileus " +
			"presentes e simétricos. Força muscular grau V global.",
	},
	{
		ID:        "def_3",
		Titulo:    "Conclusão - Incapacidade Temporária",
		Categoria: "conclusao",
		Conteudo: "Com base nos elementos clínicos e documentais apresentados, conclui-se que o " +
			"periciado apresenta incapacidade total e temporária para o exercício de suas atividades " +
			"laborais habituais, devendo permanecer afastado para tratamento médico.",
	},
	{
		ID:        "def_4",
		Titulo:    "Conclusão - Capacidade Laborativa",
		Categoria: "conclusao",
		Conteudo: "Não foram constatadas alterações clínicas objetivas que justifiquem a " +
			"incapacidade laborativa no momento. O periciado encontra-se apto para o exercício de " +
			"suas atividades laborais.",
	},
	{
		ID:        "def_5",
		Titulo:    "Anamnese - Transtorno Depressivo",
		Categoria: "anamnese",
		Conteudo: "Paciente relata quadro de humor deprimido, anedonia, isolamento social e " +
			"insônia inicial há aproximadamente 6 meses. Refere fatores estressores no ambiente de " +
			"trabalho. Em uso de psicofármacos.",
	},
	{
		ID:        "def_6",
		Titulo:    "Exame Físico - Psiquiátrico",
		Categoria: "exame_fisico",
		Conteudo: "Vigil, orientado globalmente. Atenção hipovigil. Memória preservada. Humor " +
			"hipotímico, afeto embotado. Pensamento de curso lentificado, conteúdo com ideias de " +
			"menosvalia. Sem alterações de sensopercepção aparentes.",
	},
	{
		ID:        "def_7",
		Titulo:    "Conclusão - Nexo Causal (Não há)",
		Categoria: "conclusao",
		Conteudo: "A análise da fisiopatologia da doença apresentada e das atividades laborais " +
			"descritas não permite estabelecer nexo de causalidade ou concausalidade entre a " +
			"moléstia e o trabalho.",
	},
}

// DefaultTemplates is the template set seeded when the template collection is
// empty: partial pre-fills for the most common case types.
var DefaultTemplates = []Template{
	{
		ID:    "tpl_1",
		Title: "Ação Trabalhista - LER/DORT",
		Data: json.RawMessage(`{"tipoAcao":"Trabalhista","objetivo":"` + DefaultObjetivo + `",` +
			`"metodologia":"` + DefaultMetodologia + `"}`),
	},
	{
		ID:    "tpl_2",
		Title: "Ação Previdenciária - Auxílio-Doença",
		Data: json.RawMessage(`{"tipoAcao":"Previdenciária","objetivo":"` + DefaultObjetivo + `",` +
			`"metodologia":"` + DefaultMetodologia + `"}`),
	},
}
