package demo

import "agrodesk/pkg/api"

// Canned dashboard datasets served by the demo backend.

var demoAgents = []api.Agent{
	{ID: "field-sense", Name: "FieldSense", Role: "Intent Agent"},
	{ID: "farm-ops", Name: "FarmOps", Role: "Info Collector"},
	{ID: "agro-brain", Name: "AgroBrain", Role: "Knowledge Agent"},
	{ID: "runbook-master", Name: "RunbookMaster", Role: "Decision Agent"},
	{ID: "explain-it", Name: "ExplainIt", Role: "Transparency Agent"},
}

var demoTickets = []api.Ticket{
	{
		ID:       "T-001",
		Type:     "Field Diagnosis",
		Summary:  "Leaf photos with spots, possible fungus",
		Channel:  "WhatsApp",
		Location: "Plot 22",
		Crop:     "Soybean",
		Stage:    "V5",
		Images:   []string{"/images/leaf-1.jpg"},
		Steps: []api.TicketStep{
			{Agent: "field-sense", Text: "Identified phytosanitary intention", TS: "2025-11-14T08:05:00"},
			{Agent: "farm-ops", Text: "Requested crop, age and additional photo", TS: "2025-11-14T08:06:12"},
		},
		Status: "open",
	},
	{
		ID:       "T-002",
		Type:     "Equipment Failure",
		Summary:  "Harvester vibrating",
		Channel:  "WhatsApp",
		Location: "Plot 12",
		Crop:     "Corn",
		Images:   []string{"/images/machine-1.jpg"},
		Steps: []api.TicketStep{
			{Agent: "field-sense", Text: "Mechanical failure detected", TS: "2025-11-14T06:02:11"},
			{Agent: "farm-ops", Text: "Collected telemetry and last service", TS: "2025-11-14T06:03:33"},
		},
		Status:   "open",
		Decision: "escalate",
	},
	{
		ID:       "T-003",
		Type:     "Input Stock",
		Summary:  "Low urea in warehouse",
		Channel:  "ERP",
		Location: "North Warehouse",
		Crop:     "Various",
		Images:   []string{},
		Steps: []api.TicketStep{
			{Agent: "field-sense", Text: "Stock request", TS: "2025-11-13T12:01:01"},
			{Agent: "agro-brain", Text: "Checking consumption and forecast", TS: "2025-11-13T12:02:10"},
		},
		Status:   "resolved",
		Decision: "auto-order",
	},
}

var demoRunbooks = []api.Runbook{
	{ID: "RB-01", Name: "Generate Pest Report", Description: "Analyzes image and produces preliminary report with georeferenced points", Safe: true},
	{ID: "RB-02", Name: "Open Urgent Work Order", Description: "Creates a work order and notifies on-duty mechanic", Safe: false},
	{ID: "RB-03", Name: "Stock Inquiry", Description: "Checks balance and suggests automatic replenishment", Safe: true},
	{ID: "RB-04", Name: "Pre-fill ART", Description: "Generates preliminary PDF for signature", Safe: false},
}

var demoMetrics = api.Metrics{
	Reduction:         65,
	AvgResolutionTime: 12,
	Accuracy:          92,
	Escalated:         8,
	TopSymptoms: []api.SymptomStat{
		{Machine: "Harvester", Symptom: "Vibration", Percentage: 45},
		{Machine: "Planter", Symptom: "Sensor Failure", Percentage: 30},
		{Machine: "Sprayer", Symptom: "Leakage", Percentage: 15},
	},
}

var demoPlots = []api.Plot{
	{ID: "T-22", Crop: "Soybean", Status: "Pest Alert", Lat: -22.5, Lng: -47.5},
	{ID: "T-12", Crop: "Corn", Status: "Maintenance", Lat: -22.6, Lng: -47.6},
	{ID: "T-07", Crop: "Cotton", Status: "Normal", Lat: -22.7, Lng: -47.7},
}
