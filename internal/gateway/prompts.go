package gateway

// Per-category prompt templates for the hosted generation gateway. The
// game category never reaches this package: playable prototypes are derived
// deterministically by the blueprint pipeline.

const sitePromptTemplate = `Tu es un générateur de sites web.

Brief utilisateur :
---
%s
---

Produis un projet multi-fichiers (HTML/CSS/JS vanilla, responsive, palette
cohérente). Réponds UNIQUEMENT avec un tableau JSON de fichiers :

` + "```json" + `
[
  { "filename": "index.html", "type": "html", "content": "..." },
  { "filename": "styles.css", "type": "css", "content": "..." }
]
` + "```" + `

Aucune explication hors du JSON.`

const appPromptTemplate = `Tu es un générateur d'applications web.

Brief utilisateur :
---
%s
---

Produis une application single-page fonctionnelle (HTML + CSS + JS, état géré
côté client). Réponds UNIQUEMENT avec un tableau JSON de fichiers au format :

` + "```json" + `
[
  { "filename": "index.html", "type": "html", "content": "..." },
  { "filename": "app.js", "type": "js", "content": "..." }
]
` + "```" + ``

const musicPromptTemplate = `Tu es un directeur artistique musical. À partir du
brief suivant, décris un morceau : structure, tempo, instrumentation,
ambiance, références. Réponds en français, en un texte continu.

Brief : %s`

const agentPromptTemplate = `Tu es un concepteur d'agents conversationnels.
À partir du brief suivant, rédige le persona complet d'un agent : rôle, ton,
instructions système, exemples d'échanges. Réponds en français.

Brief : %s`

const imagePromptTemplate = `Illustration détaillée, rendu soigné : %s`
