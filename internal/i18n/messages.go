package i18n

import "fmt"

// Key identifies a display string.
type Key int

const (
	KeyGreeting Key = iota
	KeyNetWorth
	KeySpendingAnalysis
	KeyAnnualOverview
	KeyInvestments
	KeyUnits
	KeyNoInvestments
	KeyNoSpendingData
	KeyAskAnything
	KeyErrorMessage
	KeyThinkingError
	KeySaveFailed
	KeyExpense
	KeyIncome
	KeyAll
	KeyTransactionAdded1
	KeyTransactionAdded2
	KeyInvestmentAdded1
	KeyInvestmentAdded2
	KeyGoals
	KeyGoalAmount
	KeyNoGoals
	KeyTransactions
	KeyNoTransactions
	KeyAchievementUnlocked
	KeyGoalMet
	KeyGoalMetDescription
	KeyMarketNews
	KeyLoadingNews
	KeyNoNews
	KeyThinking
	KeyAuthError
	KeyCheckEmail
	KeyEmailNotConfirmed
	keyCount
)

// entry is positional on purpose: a literal with a language missing does not compile.
type entry struct {
	en, pt, es, ja string
}

func (e entry) get(l Language) (string, bool) {
	switch l {
	case EN:
		return e.en, true
	case PT:
		return e.pt, true
	case ES:
		return e.es, true
	case JA:
		return e.ja, true
	}

	return "", false
}

var table = [...]entry{
	KeyGreeting: {
		`Hello! I am FinAssist. Start by telling me about your income, expenses, or investments. For example, say "I spent R$50 on lunch today".`,
		`Olá! Eu sou o FinAssist. Comece me contando sobre suas receitas, despesas ou investimentos. Por exemplo, diga "Gastei R$50 no almoço hoje".`,
		`¡Hola! Soy FinAssist. Empieza contándome tus ingresos, gastos o inversiones. Por ejemplo, di "Hoy gasté R$50 en el almuerzo".`,
		`こんにちは！私はFinAssistです。あなたの収入、支出、または投資について教えてください。例えば、「今日、昼食にR$50使いました」のように話しかけてください。`,
	},
	KeyNetWorth:         {"Net Worth", "Patrimônio Líquido", "Patrimonio Neto", "純資産"},
	KeySpendingAnalysis: {"Spending Analysis", "Análise de Gastos", "Análisis de Gastos", "支出分析"},
	KeyAnnualOverview:   {"Annual Overview", "Visão Geral Anual", "Resumen Anual", "年間概要"},
	KeyInvestments:      {"Investments", "Investimentos", "Inversiones", "投資"},
	KeyUnits:            {"units", "unidades", "unidades", "ユニット"},
	KeyNoInvestments: {
		"No investments yet.",
		"Nenhum investimento ainda.",
		"Todavía no hay inversiones.",
		"投資はまだありません。",
	},
	KeyNoSpendingData: {
		"No spending data available.",
		"Nenhum dado de gasto disponível.",
		"No hay datos de gastos disponibles.",
		"支出データはありません。",
	},
	KeyAskAnything: {
		"Ask FinAssist anything...",
		"Pergunte qualquer coisa para o FinAssist...",
		"Pregúntale a FinAssist cualquier cosa...",
		"FinAssistに何でも聞いてください...",
	},
	KeyErrorMessage: {
		"Sorry, I encountered an error. Please try again.",
		"Desculpe, encontrei um erro. Por favor, tente novamente.",
		"Lo siento, encontré un error. Por favor, inténtalo de nuevo.",
		"申し訳ありませんが、エラーが発生しました。もう一度お試しください。",
	},
	KeyThinkingError: {
		"I'm having trouble connecting to my brain right now. Please try again in a moment.",
		"Estou com problemas para me conectar ao meu cérebro agora. Por favor, tente novamente em um momento.",
		"Estoy teniendo problemas para conectarme a mi cerebro en este momento. Por favor, inténtalo de nuevo en un momento.",
		"現在、脳に接続できません。しばらくしてからもう一度お試しください。",
	},
	KeySaveFailed: {
		"Sorry, I couldn't save that. Nothing was recorded, please try again.",
		"Desculpe, não consegui salvar isso. Nada foi registrado, tente novamente.",
		"Lo siento, no pude guardar eso. No se registró nada, inténtalo de nuevo.",
		"申し訳ありませんが、保存できませんでした。何も記録されていません。もう一度お試しください。",
	},
	KeyExpense:           {"expense", "despesa", "gasto", "費用"},
	KeyIncome:            {"income", "receita", "ingreso", "収入"},
	KeyAll:               {"All", "Todos", "Todos", "すべて"},
	KeyTransactionAdded1: {"Got it. I've added the", "Entendido. Adicionei a", "Entendido. He añadido el", "了解しました。追加しました："},
	KeyTransactionAdded2: {"for", "no valor de", "por", "、金額は"},
	KeyInvestmentAdded1: {
		"Okay, I've logged the investment in",
		"Ok, registrei o investimento em",
		"Vale, he registrado la inversión en",
		"はい、投資を記録しました：",
	},
	KeyInvestmentAdded2: {"with a value of", "com um valor de", "con un valor de", "、評価額は"},
	KeyGoals:            {"Goals", "Metas", "Metas", "目標"},
	KeyGoalAmount:       {"Amount", "Valor", "Cantidad", "金額"},
	KeyNoGoals: {
		"No goals set yet. Add one!",
		"Nenhuma meta definida ainda. Adicione uma!",
		"No hay metas establecidas todavía. ¡Añade una!",
		"目標はまだ設定されていません。追加してください！",
	},
	KeyTransactions: {"Transactions", "Transações", "Transacciones", "取引"},
	KeyNoTransactions: {
		"No transactions match filters.",
		"Nenhuma transação corresponde aos filtros.",
		"Ninguna transacción coincide con los filtros.",
		"フィルターに一致する取引はありません。",
	},
	KeyAchievementUnlocked: {"Achievement Unlocked!", "Conquista Desbloqueada!", "¡Logro Desbloqueado!", "実績解除！"},
	KeyGoalMet:             {"Goal Met for", "Meta Atingida para", "Meta Alcanzada para", "目標達成："},
	KeyGoalMetDescription: {
		"You stayed under your budget of",
		"Você ficou abaixo do seu orçamento de",
		"Te mantuviste por debajo de tu presupuesto de",
		"予算内に収まりました：",
	},
	KeyMarketNews:  {"Market News", "Notícias do Mercado", "Noticias del Mercado", "市場ニュース"},
	KeyLoadingNews: {"Loading news...", "Carregando notícias...", "Cargando noticias...", "ニュースを読み込んでいます..."},
	KeyNoNews: {
		"No relevant news found for your investments.",
		"Nenhuma notícia relevante encontrada para seus investimentos.",
		"No se encontraron noticias relevantes para sus inversiones.",
		"あなたの投資に関連するニュースは見つかりませんでした。",
	},
	KeyThinking: {"Processing...", "Processando...", "Procesando...", "処理中..."},
	KeyAuthError: {
		"Authentication failed. Please check your credentials.",
		"Falha na autenticação. Verifique suas credenciais.",
		"Autenticación fallida. Por favor, compruebe sus credenciales.",
		"認証に失敗しました。資格情報を確認してください。",
	},
	KeyCheckEmail: {"Check your email", "Verifique seu e-mail", "Revisa tu correo electrónico", "メールを確認してください"},
	KeyEmailNotConfirmed: {
		"Please confirm your email address to log in.",
		"Por favor, confirme seu endereço de e-mail para entrar.",
		"Por favor, confirma tu dirección de correo electrónico para iniciar sesión.",
		"ログインするには、メールアドレスを確認してください。",
	},
}

// The table must cover every key up to keyCount.
var _ [keyCount]entry = table

// Lookup returns the string for key in lang.
func Lookup(lang Language, key Key) (string, error) {
	if key < 0 || key >= keyCount {
		return "", fmt.Errorf("%w: key %d", ErrMissingTranslation, key)
	}

	s, ok := table[key].get(lang)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	if s == "" {
		return "", fmt.Errorf("%w: key %d for %s", ErrMissingTranslation, key, lang)
	}

	return s, nil
}

// T is Lookup for callers holding a validated Language. It panics on a missing
// translation, which the table tests rule out.
func T(lang Language, key Key) string {
	s, err := Lookup(lang, key)
	if err != nil {
		panic(err)
	}

	return s
}

var suggestedPrompts = [...]entry{
	{"Analyze my spending", "Analisar meus gastos", "Analizar mis gastos", "支出を分析して"},
	{"Add a R$75 dinner expense", "Adicionar despesa de R$75 para o jantar", "Añadir gasto de R$75 para la cena", "夕食にR$75の経費を追加"},
	{"What are common bank fees?", "Quais são as taxas bancárias comuns?", "¿Cuáles son las comisiones bancarias comunes?", "一般的な銀行手数料は何ですか？"},
	{"Explain compound interest", "Explique juros compostos", "Explica el interés compuesto", "複利を説明して"},
}

// SuggestedPrompts returns the starter prompts shown next to an empty chat.
func SuggestedPrompts(lang Language) []string {
	out := make([]string, 0, len(suggestedPrompts))

	for _, e := range suggestedPrompts {
		if s, ok := e.get(lang); ok {
			out = append(out, s)
		}
	}

	return out
}

var categoryLabels = map[string]entry{
	"Income":        {"Income", "Receita", "Ingresos", "収入"},
	"Housing":       {"Housing", "Moradia", "Vivienda", "住居"},
	"Food":          {"Food", "Alimentação", "Comida", "食費"},
	"Transport":     {"Transport", "Transporte", "Transporte", "交通"},
	"Entertainment": {"Entertainment", "Lazer", "Entretenimiento", "娯楽"},
	"Health":        {"Health", "Saúde", "Salud", "健康"},
	"Other":         {"Other", "Outros", "Otros", "その他"},
}

// CategoryLabel translates a transaction category name. Unknown names are
// returned unchanged.
func CategoryLabel(name string, lang Language) string {
	e, ok := categoryLabels[name]
	if !ok {
		return name
	}

	if s, ok := e.get(lang); ok {
		return s
	}

	return name
}
