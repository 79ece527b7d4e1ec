package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a pericia record.
type Status string

const (
	StatusAguardando  Status = "Aguardando"
	StatusAgendado    Status = "Agendado"
	StatusEmAndamento Status = "Em Andamento"
	StatusConcluido   Status = "Concluido"
)

// StatusPagamento is the payment state of a pericia record.
type StatusPagamento string

const (
	PagamentoPago     StatusPagamento = "Pago"
	PagamentoPendente StatusPagamento = "Pendente"
)

// Domain default texts applied by the canonical constructor when the field is empty.
const (
	DefaultNexo    = "Não há nexo"
	DefaultParecer = "Apto"

	DefaultObjetivo = "O presente trabalho pericial tem por objetivo avaliar a capacidade " +
		"laborativa da parte autora, bem como estabelecer o nexo causal entre a patologia " +
		"alegada e suas atividades laborais."

	DefaultMetodologia = "Para a elaboração deste laudo, foram utilizados os seguintes métodos: " +
		"Anamnese ocupacional e clínica, Exame Físico direcionado, Análise documental (laudos, " +
		"exames de imagem e documentos médicos) e Revisão da literatura médica especializada."
)

// Endereco is the subject's address, rebuilt field by field by the constructor.
type Endereco struct {
	Logradouro string `json:"logradouro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
	CEP        string `json:"cep"`
}

// DocumentoRef references an attachment stored in the blob store.
// The record owns the reference; the blob store owns the bytes.
type DocumentoRef struct {
	ID           FlexID `json:"id"`
	OriginalName string `json:"originalName"`
}

// Pericia is one forensic medical-legal case file, the system's primary
// persisted entity. Every field is present after canonical construction;
// optional values normalize to empty strings, empty slices or the domain
// defaults above.
type Pericia struct {
	ID        int64           `json:"id"`
	CreatedAt string          `json:"createdAt"`
	Status    Status          `json:"status"`
	Pagamento StatusPagamento `json:"statusPagamento"`

	// Case identification
	NumeroProcesso string `json:"numeroProcesso"`
	Vara           string `json:"vara"`
	Comarca        string `json:"comarca"`
	TipoAcao       string `json:"tipoAcao"`
	NomeAutor      string `json:"nomeAutor"`
	NomeReu        string `json:"nomeReu"`

	// Subject identification
	DataNascimento string   `json:"dataNascimento"`
	CPF            string   `json:"cpf"`
	RG             string   `json:"rg"`
	CNH            string   `json:"cnh"`
	CTPS           string   `json:"ctps"`
	EstadoCivil    string   `json:"estadoCivil"`
	Escolaridade   string   `json:"escolaridade"`
	MaoDominante   string   `json:"maoDominante"`
	Telefone       string   `json:"telefone"`
	Endereco       Endereco `json:"endereco"`

	// Occupational history
	Profissao               string `json:"profissao"`
	TempoFuncao             string `json:"tempoFuncao"`
	DescAtividades          string `json:"descAtividades"`
	EPIs                    string `json:"epis"`
	HistoricoPrevidenciario string `json:"historicoPrevidenciario"`
	DataAcidente            string `json:"dataAcidente"`

	// Scheduling
	DataPericia  string `json:"dataPericia"`
	LocalPericia string `json:"localPericia"`
	Assistentes  string `json:"assistentes"`

	// Clinical narrative (rich text / HTML-bearing)
	Antecedentes         string `json:"antecedentes"`
	Anamnese             string `json:"anamnese"`
	ExameFisico          string `json:"exameFisico"`
	ExamesComplementares string `json:"examesComplementares"`

	// Conclusion
	Objetivo               string `json:"objetivo"`
	Metodologia            string `json:"metodologia"`
	Discussao              string `json:"discussao"`
	Conclusao              string `json:"conclusao"`
	CID                    string `json:"cid"`
	Nexo                   string `json:"nexo"`
	Parecer                string `json:"parecer"`
	DID                    string `json:"did"`
	DII                    string `json:"dii"`
	Prognostico            string `json:"prognostico"`
	NecessidadeAssistencia string `json:"necessidadeAssistencia"`
	Bibliografia           string `json:"bibliografia"`

	// Free-text Q&A block
	Quesitos string `json:"quesitos"`

	// Financial
	ValorHonorarios string `json:"valorHonorarios"`

	Documentos []DocumentoRef `json:"documentos"`
}

// legacyAliases maps each canonical field name to the legacy flat/snake_case
// names older records may carry. Resolution order in the constructor is
// canonical name, then aliases in order, then the default.
var legacyAliases = map[string][]string{
	"createdAt":               {"created_at"},
	"statusPagamento":         {"status_pagamento"},
	"numeroProcesso":          {"numero_processo"},
	"tipoAcao":                {"tipo_acao"},
	"nomeAutor":               {"nome_autor"},
	"nomeReu":                 {"nome_reu"},
	"dataNascimento":          {"data_nascimento"},
	"estadoCivil":             {"estado_civil"},
	"maoDominante":            {"mao_dominante"},
	"tempoFuncao":             {"tempo_funcao"},
	"descAtividades":          {"desc_atividades"},
	"localPericia":            {"local_pericia"},
	"dataPericia":             {"data_pericia"},
	"dataAcidente":            {"data_acidente"},
	"exameFisico":             {"exame_fisico"},
	"examesComplementares":    {"exames_complementares"},
	"historicoPrevidenciario": {"historico_previdenciario"},
	"necessidadeAssistencia":  {"necessidade_assistencia"},
	"valorHonorarios":         {"valor_honorarios"},
}

// NewPericia builds a fully populated canonical record from an arbitrary
// partial object, possibly in the legacy snake_case shape. It is pure and
// idempotent: running it over its own marshaled output yields an identical
// record. It never fails; business-rule validation lives in the service layer.
func NewPericia(data map[string]any) *Pericia {
	if data == nil {
		data = map[string]any{}
	}

	p := &Pericia{
		ID:        coerceID(lookup(data, "id")),
		CreatedAt: str(data, "createdAt"),
		Status:    Status(strDefault(data, "status", string(StatusAguardando))),
		Pagamento: StatusPagamento(strDefault(data, "statusPagamento", string(PagamentoPendente))),

		NumeroProcesso: str(data, "numeroProcesso"),
		Vara:           str(data, "vara"),
		Comarca:        str(data, "comarca"),
		TipoAcao:       str(data, "tipoAcao"),
		NomeAutor:      str(data, "nomeAutor"),
		NomeReu:        str(data, "nomeReu"),

		DataNascimento: str(data, "dataNascimento"),
		CPF:            str(data, "cpf"),
		RG:             str(data, "rg"),
		CNH:            str(data, "cnh"),
		CTPS:           str(data, "ctps"),
		EstadoCivil:    str(data, "estadoCivil"),
		Escolaridade:   str(data, "escolaridade"),
		MaoDominante:   str(data, "maoDominante"),
		Telefone:       str(data, "telefone"),
		Endereco:       endereco(data),

		Profissao:               str(data, "profissao"),
		TempoFuncao:             str(data, "tempoFuncao"),
		DescAtividades:          str(data, "descAtividades"),
		EPIs:                    str(data, "epis"),
		HistoricoPrevidenciario: str(data, "historicoPrevidenciario"),
		DataAcidente:            str(data, "dataAcidente"),

		DataPericia:  str(data, "dataPericia"),
		LocalPericia: str(data, "localPericia"),
		Assistentes:  str(data, "assistentes"),

		Antecedentes:         str(data, "antecedentes"),
		Anamnese:             str(data, "anamnese"),
		ExameFisico:          str(data, "exameFisico"),
		ExamesComplementares: str(data, "examesComplementares"),

		Objetivo:               strDefault(data, "objetivo", DefaultObjetivo),
		Metodologia:            strDefault(data, "metodologia", DefaultMetodologia),
		Discussao:              str(data, "discussao"),
		Conclusao:              str(data, "conclusao"),
		CID:                    str(data, "cid"),
		Nexo:                   strDefault(data, "nexo", DefaultNexo),
		Parecer:                strDefault(data, "parecer", DefaultParecer),
		DID:                    str(data, "did"),
		DII:                    str(data, "dii"),
		Prognostico:            str(data, "prognostico"),
		NecessidadeAssistencia: str(data, "necessidadeAssistencia"),
		Bibliografia:           str(data, "bibliografia"),

		Quesitos:        str(data, "quesitos"),
		ValorHonorarios: str(data, "valorHonorarios"),

		Documentos: documentos(data),
	}

	return p
}

// HasLegacyKeys reports whether a raw record carries any legacy field name.
// Used by the migration routine to detect entries that need rewriting.
func HasLegacyKeys(data map[string]any) bool {
	for _, aliases := range legacyAliases {
		for _, a := range aliases {
			if _, ok := data[a]; ok {
				return true
			}
		}
	}
	if items, ok := data["documentos"].([]any); ok {
		for _, it := range items {
			if m, ok := it.(map[string]any); ok {
				if _, old := m["original_name"]; old {
					return true
				}
			}
		}
	}
	return false
}

// Map returns the canonical record decoded back into a generic map, which is
// what the key-value store collections hold.
func (p *Pericia) Map() map[string]any {
	b, _ := json.Marshal(p)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// lookup resolves a field by canonical name first, then by its legacy aliases.
func lookup(data map[string]any, key string) any {
	if v, ok := data[key]; ok && v != nil {
		return v
	}
	for _, alias := range legacyAliases[key] {
		if v, ok := data[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

func str(data map[string]any, key string) string {
	return stringify(lookup(data, key))
}

func strDefault(data map[string]any, key, def string) string {
	if s := str(data, key); s != "" {
		return s
	}
	return def
}

// stringify coerces the loosely typed values found in stored JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// coerceID normalizes string and numeric identifiers to int64 once, at the
// model boundary, so lookups never depend on loose comparison.
func coerceID(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	case json.Number:
		n, _ := t.Int64()
		return n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// endereco rebuilds the nested address field by field, never by reference.
// Very old records stored the address as a single line; that goes to Logradouro.
func endereco(data map[string]any) Endereco {
	switch t := lookup(data, "endereco").(type) {
	case map[string]any:
		return Endereco{
			Logradouro: stringify(t["logradouro"]),
			Cidade:     stringify(t["cidade"]),
			UF:         stringify(t["uf"]),
			CEP:        stringify(t["cep"]),
		}
	case string:
		return Endereco{Logradouro: t}
	default:
		return Endereco{}
	}
}

// documentos rebuilds the attachment reference list, migrating the legacy
// original_name key to originalName.
func documentos(data map[string]any) []DocumentoRef {
	items, ok := lookup(data, "documentos").([]any)
	if !ok {
		return []DocumentoRef{}
	}
	out := make([]DocumentoRef, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		ref := DocumentoRef{
			ID:           FlexID(stringify(m["id"])),
			OriginalName: stringify(m["originalName"]),
		}
		if ref.OriginalName == "" {
			ref.OriginalName = stringify(m["original_name"])
		}
		if ref.OriginalName == "" {
			ref.OriginalName = stringify(m["nome"])
		}
		out = append(out, ref)
	}
	return out
}
