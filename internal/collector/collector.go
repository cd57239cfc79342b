package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hcalazans/autovoz/internal/models"
)

// simulatedPosts is the fixed fallback dataset used when the real
// collector fails or returns nothing. Deliberately mixed in sentiment so a
// degraded run still renders a meaningful distribution; {modelo} is
// substituted with the requested model name.
var simulatedPosts = []string{
	"O {modelo} é excelente, motor potente, adorei o design e o consumo de combustível é ótimo!",
	"Nunca mais compro um {modelo}. O acabamento é ridículo e o pós-venda da concessionária é péssimo.",
	"Estou pensando em comprar um {modelo}. O preço está justo, mas a cor não me agrada. É um bom carro.",
	"Tive um problema sério com o sistema de som do meu {modelo}. Decepcionante. Péssimo!",
	"Recomendo o {modelo}! Tecnologia de ponta e muito seguro. Excelente carro!",
	"A dirigibilidade do {modelo} é ok, mas nada demais. Neutro sobre a compra. A cor é simples.",
	"O novo painel digital do {modelo} é espetacular e a central multimídia funciona perfeitamente!",
	"Achei o carro muito fraco. O motor 1.0 é lento e a manutenção é cara. Não gostei.",
	"O {modelo} tem o melhor custo-benefício do mercado, é lindo e confortável. Super positivo!",
	"O carro só dá problemas. Não recomendo a compra. Um verdadeiro pesadelo. Que horror!",
}

// Simulated is the injectable degraded-mode source. It never fails, so it
// is safe as the fallback of last resort, and it is deterministic given a
// fixed clock.
type Simulated struct {
	// Now is overridable for deterministic timestamps in tests.
	Now func() time.Time
}

func NewSimulated() *Simulated {
	return &Simulated{Now: time.Now}
}

func (s *Simulated) Collect(ctx context.Context, model string, limit int) ([]models.TextRecord, error) {
	now := s.Now()

	count := len(simulatedPosts)
	if limit > 0 && limit < count {
		count = limit
	}

	records := make([]models.TextRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, models.TextRecord{
			RawText:   strings.ReplaceAll(simulatedPosts[i], "{modelo}", model),
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
			Author:    fmt.Sprintf("@simulado%d", i+1),
		})
	}
	return records, nil
}
