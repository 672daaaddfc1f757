package extraction

import "strings"

// keywordClass maps a label to the phrases that assign it. Classes are
// checked in slice order so more specific phrases win over generic ones.
type keywordClass struct {
	label    string
	keywords []string
}

var methodClasses = []keywordClass{
	{"hybrid", []string{"hybrid model", "hybrid approach", "ensemble of"}},
	{"deep_learning", []string{"deep learning", "convolutional", "cnn", "lstm", "recurrent neural", "transformer"}},
	{"ann", []string{"artificial neural network", "neural network", "multilayer perceptron", "mlp", "ann "}},
	{"svm", []string{"support vector", "svm"}},
	{"random_forest", []string{"random forest"}},
	{"gradient_boosting", []string{"gradient boosting", "xgboost", "lightgbm"}},
	{"pls", []string{"partial least squares", "pls regression", "pls-da"}},
	{"fuzzy", []string{"fuzzy logic", "fuzzy inference", "neuro-fuzzy"}},
	{"genetic_algorithm", []string{"genetic algorithm", "evolutionary algorithm"}},
}

var domainClasses = []keywordClass{
	{"beer", []string{"beer", "brewing", "brewery", "wort"}},
	{"wine", []string{"wine", "winemaking", "grape must", "oenolog"}},
	{"dairy", []string{"cheese", "yogurt", "yoghurt", "milk fermentation", "dairy", "kefir"}},
	{"bioethanol", []string{"bioethanol", "ethanol production", "biofuel", "lignocellulos"}},
	{"baking", []string{"sourdough", "bread", "dough fermentation", "baker"}},
	{"biogas", []string{"biogas", "anaerobic digestion", "methane yield"}},
	{"soy", []string{"soy sauce", "miso", "tempeh", "koji"}},
	{"kimchi", []string{"kimchi", "sauerkraut", "pickle"}},
}

var scaleClasses = []keywordClass{
	{"industrial", []string{"industrial scale", "industrial-scale", "full-scale", "full scale", "production plant", "commercial scale"}},
	{"pilot", []string{"pilot scale", "pilot-scale", "pilot plant"}},
	{"laboratory", []string{"lab scale", "lab-scale", "laboratory scale", "laboratory-scale", "bench scale", "bench-scale", "shake flask", "flask"}},
}

func classify(classes []keywordClass, text, fallback string) string {
	lower := strings.ToLower(text)
	for _, c := range classes {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.label
			}
		}
	}
	return fallback
}

func classifyMethod(text string) string { return classify(methodClasses, text, "other") }

func classifyDomain(text string) string { return classify(domainClasses, text, "general") }

func classifyScale(text string) string { return classify(scaleClasses, text, "unspecified") }
