package about

import "strings"

// Skill is a catalog entry: display name plus the brand color and icon slug
// the frontend uses to render the skill chip.
type Skill struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// skillCatalog is the static catalog stored skill names are matched against.
// Names not present here still render, just without brand metadata.
var skillCatalog = []Skill{
	{Name: "Python", Color: "#3776AB", Icon: "python"},
	{Name: "FastAPI", Color: "#009688", Icon: "fastapi"},
	{Name: "Flask", Color: "#000000", Icon: "flask"},
	{Name: "Django", Color: "#092E20", Icon: "django"},
	{Name: "Go", Color: "#00ADD8", Icon: "go"},
	{Name: "Node.js", Color: "#339933", Icon: "nodedotjs"},
	{Name: "Express.js", Color: "#000000", Icon: "express"},
	{Name: "REST APIs", Color: "#6BA539", Icon: "openapiinitiative"},
	{Name: "JWT Auth", Color: "#000000", Icon: "jsonwebtokens"},
	{Name: "JavaScript", Color: "#F7DF1E", Icon: "javascript"},
	{Name: "TypeScript", Color: "#3178C6", Icon: "typescript"},
	{Name: "React", Color: "#61DAFB", Icon: "react"},
	{Name: "Next.js", Color: "#000000", Icon: "nextdotjs"},
	{Name: "Tailwind CSS", Color: "#06B6D4", Icon: "tailwindcss"},
	{Name: "HTML5", Color: "#E34F26", Icon: "html5"},
	{Name: "CSS3", Color: "#1572B6", Icon: "css3"},
	{Name: "MongoDB", Color: "#47A248", Icon: "mongodb"},
	{Name: "PostgreSQL", Color: "#4169E1", Icon: "postgresql"},
	{Name: "SQLite", Color: "#003B57", Icon: "sqlite"},
	{Name: "Redis", Color: "#FF4438", Icon: "redis"},
	{Name: "Docker", Color: "#2496ED", Icon: "docker"},
	{Name: "Git", Color: "#F05032", Icon: "git"},
	{Name: "GitHub", Color: "#181717", Icon: "github"},
	{Name: "Linux", Color: "#FCC624", Icon: "linux"},
	{Name: "Kotlin", Color: "#7F52FF", Icon: "kotlin"},
	{Name: "Postman", Color: "#FF6C37", Icon: "postman"},
	{Name: "Swagger", Color: "#85EA2D", Icon: "swagger"},
	{Name: "Vercel", Color: "#000000", Icon: "vercel"},
	{Name: "Render", Color: "#000000", Icon: "render"},
}

// LookupSkill finds a catalog entry by name, case-insensitively.
func LookupSkill(name string) (Skill, bool) {
	for _, s := range skillCatalog {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Skill{}, false
}

// resolveSkills maps stored skill names to catalog entries, preserving order.
// Unknown names pass through with only the name set.
func resolveSkills(names []string) []Skill {
	if len(names) == 0 {
		return nil
	}
	out := make([]Skill, 0, len(names))
	for _, name := range names {
		if s, ok := LookupSkill(name); ok {
			out = append(out, s)
			continue
		}
		out = append(out, Skill{Name: name})
	}
	return out
}
