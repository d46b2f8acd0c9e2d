package correspondence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/proman-api/internal/domain/correspondence"
)

var fixedNow = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

func TestSubstituteVariables_Basico(t *testing.T) {
	got := correspondence.SubstituteVariables("Hello {{name}}", map[string]string{"name": "Ana"}, fixedNow)
	assert.Equal(t, "Hello Ana", got)
}

func TestSubstituteVariables_DesconocidoQuedaLiteral(t *testing.T) {
	got := correspondence.SubstituteVariables("Hello {{name}}, {{foo}}", map[string]string{"name": "Ana"}, fixedNow)
	assert.Equal(t, "Hello Ana, {{foo}}", got)
}

func TestSubstituteVariables_Integrados(t *testing.T) {
	got := correspondence.SubstituteVariables("{{current_date}} / {{current_year}}", nil, fixedNow)
	assert.Equal(t, "07/03/2025 / 2025", got)
}

func TestSubstituteVariables_LlamadorRedefineIntegrado(t *testing.T) {
	got := correspondence.SubstituteVariables("{{current_year}}", map[string]string{"current_year": "2030"}, fixedNow)
	assert.Equal(t, "2030", got)
}

func TestSubstituteVariables_MetacaracteresSonLiterales(t *testing.T) {
	vars := map[string]string{"a.b": "X", "(x)+": "Y", "$1": "Z"}
	got := correspondence.SubstituteVariables("{{a.b}} {{aXb}} {{(x)+}} {{$1}}", vars, fixedNow)
	assert.Equal(t, "X {{aXb}} Y Z", got)
}

func TestSubstituteVariables_ValoresNoSeReexpanden(t *testing.T) {
	vars := map[string]string{"name": "{{current_year}}", "dollar": "$&"}
	got := correspondence.SubstituteVariables("{{name}} {{dollar}}", vars, fixedNow)
	assert.Equal(t, "{{current_year}} $&", got)
}

func TestSubstituteVariables_Idempotente(t *testing.T) {
	tpl := "Caro {{tenant_name}}, {{unknown}} renda {{rent_amount}}"
	vars := map[string]string{"tenant_name": "Ana", "rent_amount": "950.00"}
	once := correspondence.SubstituteVariables(tpl, vars, fixedNow)
	twice := correspondence.SubstituteVariables(once, vars, fixedNow)
	assert.Equal(t, once, twice)
}

func TestParse_CasosLimite(t *testing.T) {
	vars := map[string]string{"x": "1"}
	assert.Equal(t, "sin marcadores", correspondence.Parse("sin marcadores").Execute(vars))
	assert.Equal(t, "abierto {{x", correspondence.Parse("abierto {{x").Execute(vars))
	assert.Equal(t, "{1}", correspondence.Parse("{{{x}}}").Execute(vars))
	assert.Equal(t, "11", correspondence.Parse("{{x}}{{x}}").Execute(vars))
	assert.Equal(t, "{{}}", correspondence.Parse("{{}}").Execute(vars))
	assert.Equal(t, "", correspondence.Parse("").Execute(vars))
}

func TestSubstituteVariables_AperturaSueltaNoTapaMarcador(t *testing.T) {
	vars := map[string]string{"name": "Ana", "x": "1"}
	got := correspondence.SubstituteVariables("Use {{ to open. Hello {{name}}", vars, fixedNow)
	assert.Equal(t, "Use {{ to open. Hello Ana", got)

	assert.Equal(t, "{{ a {{ b 1", correspondence.SubstituteVariables("{{ a {{ b {{x}}", vars, fixedNow))
	assert.Equal(t, "{{Ana}}", correspondence.SubstituteVariables("{{{{name}}}}", vars, fixedNow))
	assert.Equal(t, []string{"name"}, correspondence.Parse("{{ y {{name}}").Tokens())
}

func TestTokens_UnicosEnOrden(t *testing.T) {
	tpl := correspondence.Parse("{{b}} {{a}} {{b}} {{c}}")
	assert.Equal(t, []string{"b", "a", "c"}, tpl.Tokens())
	assert.Equal(t, []string{"x", "y"}, correspondence.Variables("{{x}}", "{{y}} {{x}}"))
}
