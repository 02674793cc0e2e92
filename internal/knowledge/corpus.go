package knowledge

// builtinInsights is the baked-in corpus of consulting-firm research
// findings. Order matters: Search breaks score ties by corpus order.
var builtinInsights = []Insight{
	{
		Title:    "Productivity+",
		Fact:     "84% of workers would be more productive if they could structure their day around their own preferences",
		Source:   "Deloitte Human Capital Trends 2024",
		Category: "productivity",
		Tags:     []string{"flexibility", "autonomy", "work-style"},
	},
	{
		Title:    "Unproductive meetings",
		Fact:     "Employees spend 31 hours per month in unproductive meetings",
		Source:   "Deloitte Workplace Productivity Study",
		Category: "meetings",
		Tags:     []string{"time-waste", "meetings", "efficiency"},
	},
	{
		Title:    "Email overload",
		Fact:     "28% of the workday goes to reading and answering email",
		Source:   "Deloitte Digital Workplace Report",
		Category: "communication",
		Tags:     []string{"email", "communication", "time-management"},
	},
	{
		Title:    "Top 5 priorities",
		Fact:     "The most productive professionals spend 95% of their time on their top 5 priorities",
		Source:   "McKinsey Organizational Time Management",
		Category: "prioritization",
		Tags:     []string{"focus", "priorities", "time-allocation"},
	},
	{
		Title:    "MECE principle",
		Fact:     "The MECE principle keeps work organized without overlap or gaps",
		Source:   "McKinsey Problem Solving Toolkit",
		Category: "organization",
		Tags:     []string{"MECE", "structure", "logic"},
	},
	{
		Title:    "Hybrid balance",
		Fact:     "40-60% of time on-site is the optimal balance between productivity and collaboration",
		Source:   "BCG Future of Work Study",
		Category: "hybrid-work",
		Tags:     []string{"hybrid", "collaboration", "balance"},
	},
	{
		Title:    "Energy-task alignment",
		Fact:     "Aligning complex tasks with natural energy peaks raises output quality",
		Source:   "KPMG Human Performance Study",
		Category: "energy-management",
		Tags:     []string{"energy", "performance", "timing"},
	},
}
