package titles

// defaultSynonyms maps common lowercase phrasings onto corpus job titles.
var defaultSynonyms = map[string]string{
	// Backend
	"backend dev":          "Developer, back-end",
	"backend developer":    "Developer, back-end",
	"back-end dev":         "Developer, back-end",
	"back-end developer":   "Developer, back-end",
	"backend engineer":     "Developer, back-end",
	"be developer":         "Developer, back-end",
	"frontend dev":         "Developer, front-end",
	"frontend developer":   "Developer, front-end",
	"front-end dev":        "Developer, front-end",
	"front-end developer":  "Developer, front-end",
	"frontend engineer":    "Developer, front-end",
	"fe developer":         "Developer, front-end",
	"fullstack":            "Developer, full-stack",
	"full stack":           "Developer, full-stack",
	"fullstack developer":  "Developer, full-stack",
	"full-stack dev":       "Developer, full-stack",
	"full stack developer": "Developer, full-stack",
	"fs developer":         "Developer, full-stack",

	// Data
	"data analyst":     "Data or business analyst",
	"business analyst": "Data or business analyst",
	"analyst":          "Data or business analyst",
	"ba":               "Data or business analyst",
	"data scientist":   "Data scientist",
	"ds":               "Data scientist",
	"scientist":        "Data scientist",
	"data engineer":    "Data engineer",
	"de":               "Data engineer",

	// AI/ML
	"ml engineer":                      "AI/ML engineer",
	"machine learning engineer":        "AI/ML engineer",
	"ai engineer":                      "AI/ML engineer",
	"artificial intelligence engineer": "AI/ML engineer",
	"ai developer":                     "Developer, AI apps or physical AI",
	"ai app developer":                 "Developer, AI apps or physical AI",
	"physical ai developer":            "Developer, AI apps or physical AI",
	"applied scientist":                "Applied scientist",

	// Infrastructure
	"cloud engineer":          "Cloud infrastructure engineer",
	"cloud infrastructure":    "Cloud infrastructure engineer",
	"infrastructure engineer": "Cloud infrastructure engineer",
	"sysadmin":                "System administrator",
	"sys admin":               "System administrator",
	"system admin":            "System administrator",
	"devops":                  "DevOps engineer or professional",
	"devops engineer":         "DevOps engineer or professional",
	"devops professional":     "DevOps engineer or professional",

	// Database
	"database admin":         "Database administrator or engineer",
	"dba":                    "Database administrator or engineer",
	"db admin":               "Database administrator or engineer",
	"database administrator": "Database administrator or engineer",
	"database engineer":      "Database administrator or engineer",

	// QA
	"qa":                "Developer, QA or test",
	"qa engineer":       "Developer, QA or test",
	"tester":            "Developer, QA or test",
	"test engineer":     "Developer, QA or test",
	"quality assurance": "Developer, QA or test",
	"qa developer":      "Developer, QA or test",

	// Management
	"project manager":     "Project manager",
	"pm":                  "Product manager",
	"product manager":     "Product manager",
	"engineering manager": "Engineering manager",
	"eng manager":         "Engineering manager",
	"em":                  "Engineering manager",

	// Security
	"security":              "Cybersecurity or InfoSec professional",
	"cybersecurity":         "Cybersecurity or InfoSec professional",
	"infosec":               "Cybersecurity or InfoSec professional",
	"security engineer":     "Cybersecurity or InfoSec professional",
	"security professional": "Cybersecurity or InfoSec professional",

	// Support
	"support engineer": "Support engineer or analyst",
	"support analyst":  "Support engineer or analyst",
	"customer support": "Support engineer or analyst",

	// Design
	"ux":            "UX, Research Ops or UI design professional",
	"ui":            "UX, Research Ops or UI design professional",
	"ux designer":   "UX, Research Ops or UI design professional",
	"ui designer":   "UX, Research Ops or UI design professional",
	"designer":      "UX, Research Ops or UI design professional",
	"ux researcher": "UX, Research Ops or UI design professional",

	// Leadership
	"cto":        "Senior executive (C-suite, VP, etc.)",
	"ceo":        "Senior executive (C-suite, VP, etc.)",
	"vp":         "Senior executive (C-suite, VP, etc.)",
	"executive":  "Senior executive (C-suite, VP, etc.)",
	"c-suite":    "Senior executive (C-suite, VP, etc.)",
	"founder":    "Founder, technology or otherwise",
	"co-founder": "Founder, technology or otherwise",

	// Specialized developers
	"researcher":           "Academic researcher",
	"academic":             "Academic researcher",
	"academic researcher":  "Academic researcher",
	"mobile dev":           "Developer, mobile",
	"mobile developer":     "Developer, mobile",
	"mobile engineer":      "Developer, mobile",
	"ios developer":        "Developer, mobile",
	"android developer":    "Developer, mobile",
	"game dev":             "Developer, game or graphics",
	"game developer":       "Developer, game or graphics",
	"graphics developer":   "Developer, game or graphics",
	"desktop dev":          "Developer, desktop or enterprise applications",
	"desktop developer":    "Developer, desktop or enterprise applications",
	"enterprise developer": "Developer, desktop or enterprise applications",
	"embedded developer":   "Developer, embedded applications or devices",
	"embedded engineer":    "Developer, embedded applications or devices",
	"iot developer":        "Developer, embedded applications or devices",

	// Architecture
	"architect":           "Architect, software or solutions",
	"software architect":  "Architect, software or solutions",
	"solutions architect": "Architect, software or solutions",
	"solution architect":  "Architect, software or solutions",

	// Finance
	"financial analyst":  "Financial analyst or engineer",
	"financial engineer": "Financial analyst or engineer",
	"quant":              "Financial analyst or engineer",
}

// DefaultSynonyms returns a copy of the built-in synonym dictionary.
func DefaultSynonyms() map[string]string {
	out := make(map[string]string, len(defaultSynonyms))
	for k, v := range defaultSynonyms {
		out[k] = v
	}
	return out
}
