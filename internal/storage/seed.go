package storage

import "github.com/stor-a-gentic/server/internal/agent/model"

var seedFAQs = []model.FaqEntry{
	{ID: "1", Question: "What size storage units do you offer?", Answer: "We offer a variety of sizes, from small 5x5 lockers to large 10x30 units suitable for business inventory or household storage during a move."},
	{ID: "2", Question: "Are your storage units climate controlled?", Answer: "Yes, we offer climate-controlled units that maintain a consistent temperature and humidity level to protect sensitive items."},
	{ID: "3", Question: "How secure are your facilities?", Answer: "Our facilities feature 24/7 video surveillance, electronic gate access, on-site management, and individually alarmed units."},
	{ID: "4", Question: "What are your business hours?", Answer: "Our office is open Monday to Friday from 9am to 7pm, and on weekends from 10am to 5pm. Gate access is available 24/7 for customers."},
	{ID: "5", Question: "Do I need to sign a long-term contract?", Answer: "No, our rental agreements are month-to-month with no long-term commitment required."},
}

var seedLocations = []model.Location{
	{ID: "1", Name: "Downtown Storage Center", Address: "123 Main St, Downtown", Phone: "(555) 123-4567", Hours: "Mon-Fri: 9am-7pm, Sat-Sun: 10am-5pm"},
	{ID: "2", Name: "Westside Storage Facility", Address: "456 West Ave, Westside", Phone: "(555) 987-6543", Hours: "Mon-Fri: 9am-7pm, Sat-Sun: 10am-5pm"},
	{ID: "3", Name: "Eastside Storage Units", Address: "789 East Blvd, Eastside", Phone: "(555) 456-7890", Hours: "Mon-Fri: 9am-7pm, Sat-Sun: 10am-5pm"},
}

// sorted ascending by date
var seedCollectionSlots = []model.CollectionSlot{
	{ID: "1", Date: "2023-12-01", TimeSlots: []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"}},
	{ID: "2", Date: "2023-12-02", TimeSlots: []string{"10:00 AM", "1:00 PM", "3:00 PM"}},
	{ID: "3", Date: "2023-12-03", TimeSlots: []string{"9:00 AM", "12:00 PM", "5:00 PM"}},
}
