package flow

// Canned informational answers. These are served verbatim for stateless
// informational intents.

const childrenPolicyResponse = `
👶 **Children & Infant Seating Policy**

**Infants (Under 2 years):**
• 🆓 Can travel on parent's lap for free (domestic)
• 💺 May purchase a seat at child fare if preferred
• 🎫 Must have their own ticket
• ⚠️ Maximum 1 lap infant per adult
• 📝 Proof of age may be required

**Children (2-11 years):**
• 💺 Must have their own purchased seat
• 👨‍👩‍👧 No unaccompanied minor under age 5
• 🎯 Ages 5-14: Unaccompanied minor service available ($150)
• 🪑 No special seat requirements - regular seats

**Car Seats & Boosters:**
• ✅ FAA-approved car seats allowed for children under 40 lbs
• 💺 Must fit in aircraft seat (max 16" wide)
• 🔒 Must be properly secured
• 🆓 No extra charge if child has own seat

**Seating Together:**
• 👨‍👩‍👧‍👦 We try to seat families together
• 📞 Call to request adjacent seats
• 🎫 Select seats during booking for best choice

**Special Accommodations:**
• 🍼 Bottle warming available on request
• 🚼 Changing tables in lavatories
• 🎮 Kids entertainment available on most flights

Would you like to know anything else about traveling with children?
`

const petPolicyResponse = `
🐾 **Pet Travel Policy**

**Small Pets in Cabin:**
• ✅ Small cats and dogs allowed in cabin
• 💰 Fee: $125 each way
• 📦 Must fit in carrier under seat (17"L x 12.5"W x 8.5"H)
• 🎫 Maximum 4 pets per flight
• ⚠️ Must be at least 4 months old
• 📝 Reservation required - call JetBlue to book

**Not Allowed:**
• ❌ Pets in cargo/checked baggage
• ❌ Emotional support animals (except trained service animals)
• ❌ Pets on flights over 6 hours

**Requirements:**
• Health certificate from vet (within 30 days)
• Pet must remain in carrier entire flight
• Only 1 pet per carrier
• Carrier counts as your carry-on item

**Service Animals:**
• ✅ Trained service dogs allowed free of charge
• Must provide documentation

Would you like to know anything else about traveling with pets?
`

const complaintsResponse = "📝 **File a Complaint**\n\n" +
	"I'm sorry to hear you had a negative experience. Your feedback is important to us.\n\n" +
	"**To file a complaint, please provide:**\n" +
	"• Your booking ID (if applicable)\n" +
	"• Date and flight number\n" +
	"• Description of the issue\n" +
	"• What resolution you're seeking\n\n" +
	"**Contact Options:**\n" +
	"• 📞 Call: 1-800-JETBLUE (538-2583)\n" +
	"• 📧 Email: customer.relations@jetblue.com\n" +
	"• 💬 Online form: jetblue.com/contact-us\n\n" +
	"We typically respond within 24-48 hours.\n\n" +
	"Is there anything else I can help you with today?"

const damagedBagResponse = "💼 **Damaged Baggage Claim**\n\n" +
	"I'm sorry your baggage was damaged. Here's what to do:\n\n" +
	"**Immediate Steps:**\n" +
	"• 🚨 Report damage BEFORE leaving the airport\n" +
	"• 📋 Go to the Baggage Service Office\n" +
	"• 📸 Take photos of the damage\n" +
	"• 🎫 Keep your baggage claim tag\n\n" +
	"**Required Information:**\n" +
	"• Booking ID or ticket number\n" +
	"• Baggage claim tag number\n" +
	"• Description of damage\n" +
	"• Photos of damaged items\n\n" +
	"**Claim Process:**\n" +
	"• File within 24 hours for domestic, 7 days for international\n" +
	"• We'll assess repair vs. replacement\n" +
	"• Reimbursement up to $3,500 per passenger\n\n" +
	"**Contact:**\n" +
	"📞 Baggage Service: 1-866-538-5438\n\n" +
	"Would you like help with anything else?"

const missingBagResponse = "🧳 **Missing Baggage Report**\n\n" +
	"I understand how stressful this is. Let's locate your bag:\n\n" +
	"**Immediate Steps:**\n" +
	"• 🚨 Report missing bag BEFORE leaving airport\n" +
	"• 📋 File report at Baggage Service Office\n" +
	"• 🎫 Provide your baggage claim tag\n" +
	"• 📝 Get file reference number\n\n" +
	"**We'll Need:**\n" +
	"• Booking ID or ticket number\n" +
	"• Baggage claim tag number\n" +
	"• Bag description (color, brand, size)\n" +
	"• Contents description\n" +
	"• Delivery address\n\n" +
	"**What Happens Next:**\n" +
	"• 🔍 We search our system worldwide\n" +
	"• 📱 Updates via text/email\n" +
	"• 🚚 Free delivery once found (usually 24-48hrs)\n" +
	"• 💵 Interim expense reimbursement available\n\n" +
	"**Track Your Bag:**\n" +
	"🌐 jetblue.com/travel/baggage-tracking\n" +
	"📞 Baggage Services: 1-866-538-5438\n\n" +
	"Anything else I can help with?"

const discountsResponse = "💰 **Discounts & Deals**\n\n" +
	"**Current Offers:**\n" +
	"• ✈️ TrueBlue Members: Earn points on every flight\n" +
	"• 🎫 Blue Basic: Our lowest fares\n" +
	"• 📧 Email Alerts: Get deal notifications\n\n" +
	"**Special Discounts:**\n" +
	"• 🎖️ Military: 5% off for active duty & veterans\n" +
	"• 👨‍✈️ First Responders: Special rates available\n" +
	"• 👶 Infants: Free lap seating under 2 years\n" +
	"• 🎓 Student: Check student universe for deals\n\n" +
	"**How to Save:**\n" +
	"• 📅 Book Tuesday-Thursday for best prices\n" +
	"• 🗓️ Fly Tuesday, Wednesday, Saturday\n" +
	"• 📆 Book 3-4 weeks in advance\n" +
	"• 🔔 Set fare alerts on our website\n\n" +
	"**Loyalty Program:**\n" +
	"Join TrueBlue (free!):\n" +
	"• Earn 3 points per $1 spent\n" +
	"• Points never expire\n" +
	"• No blackout dates\n" +
	"• Family pooling available\n\n" +
	"**Check Deals:**\n" +
	"🌐 jetblue.com/deals\n\n" +
	"Ready to book a flight?"

const fareCheckResponse = "💵 **Fare Information**\n\n" +
	"**Fare Types:**\n\n" +
	"**Blue Basic** (Economy Light)\n" +
	"• Lowest price\n" +
	"• 1 personal item only\n" +
	"• No seat selection\n" +
	"• Board last\n" +
	"• No changes allowed\n\n" +
	"**Blue** (Standard Economy)\n" +
	"• 1 carry-on + 1 personal item\n" +
	"• Free seat selection\n" +
	"• Changes allowed (fee applies)\n" +
	"• Earn full TrueBlue points\n\n" +
	"**Blue Plus** (Economy with perks)\n" +
	"• Everything in Blue, plus:\n" +
	"• 1 free checked bag\n" +
	"• Preferred seating\n" +
	"• Early boarding\n" +
	"• Bonus TrueBlue points\n\n" +
	"**Blue Extra** (Extra Legroom)\n" +
	"• 5+ inches extra legroom\n" +
	"• Priority boarding\n" +
	"• Fast track security (select airports)\n\n" +
	"**Mint** (Business Class)\n" +
	"• Lie-flat seats\n" +
	"• 2 checked bags free\n" +
	"• Gourmet meals\n" +
	"• Priority everything\n\n" +
	"**Get Exact Prices:**\n" +
	"Fares vary by:\n" +
	"• Route & distance\n" +
	"• Date & time\n" +
	"• Booking timing\n" +
	"• Seat availability\n\n" +
	"💡 **Tip:** Book early for best prices!\n\n" +
	"Would you like to search for specific flights?"

const flightsInfoResponse = "✈️ **Flight Information**\n\n" +
	"**JetBlue Route Network:**\n" +
	"• 🇺🇸 100+ destinations in USA\n" +
	"• 🌎 Caribbean & Latin America\n" +
	"• 🗽 Major hubs: New York (JFK), Boston, Fort Lauderdale\n\n" +
	"**Flight Features:**\n" +
	"• 📺 Free entertainment on all flights\n" +
	"• 🥤 Complimentary snacks & beverages\n" +
	"• 📶 Wi-Fi available (fee applies)\n" +
	"• 🔌 Power outlets at every seat\n\n" +
	"**Check Flight Status:**\n" +
	"• 🌐 jetblue.com/flight-status\n" +
	"• 📱 JetBlue mobile app\n" +
	"• 📞 Call: 1-800-JETBLUE\n\n" +
	"**Typical Check-in Times:**\n" +
	"• ⏰ Domestic: 2 hours before\n" +
	"• 🌍 International: 3 hours before\n" +
	"• 🚪 Boarding: 30-45 minutes before departure\n\n" +
	"**Need Specific Info?**\n" +
	"I can help you:\n" +
	"• Check your booking status\n" +
	"• Search available flights\n" +
	"• Book a new flight\n\n" +
	"What would you like to do?"

const insuranceResponse = "🛡️ **Travel Insurance & Protection**\n\n" +
	"**JetBlue Coverage Options:**\n\n" +
	"**Trip Protection** ($29-89 per person)\n" +
	"• ✅ Trip cancellation coverage\n" +
	"• ✅ Trip interruption\n" +
	"• ✅ Travel delays (6+ hours)\n" +
	"• ✅ Baggage delay/loss\n" +
	"• ✅ Emergency medical\n" +
	"• ✅ 24/7 travel assistance\n\n" +
	"**What's Covered:**\n" +
	"• 🏥 Illness or injury\n" +
	"• 🏠 Home emergency\n" +
	"• 🌪️ Severe weather\n" +
	"• ⚠️ Mandatory evacuations\n" +
	"• 💼 Work-related obligations\n\n" +
	"**When to Buy:**\n" +
	"• 📅 Purchase within 24 hours of booking for full coverage\n" +
	"• ⏰ Can add up to departure date (limited coverage)\n\n" +
	"**JetBlue's Built-in Flexibility:**\n" +
	"• 🔄 24-hour risk-free booking\n" +
	"• ✈️ Flight changes allowed (fee may apply)\n" +
	"• 💳 TrueBlue points bookings: Cancel anytime\n\n" +
	"**Coverage Limits:**\n" +
	"• Trip cost: Up to $10,000\n" +
	"• Medical: Up to $50,000\n" +
	"• Baggage: Up to $500\n\n" +
	"**Purchase Insurance:**\n" +
	"• During booking process\n" +
	"• jetblue.com/insurance\n" +
	"• Or manage trips section\n\n" +
	"Would you like to book a flight?"

const medicalPolicyResponse = "🏥 **Medical & Health Policies**\n\n" +
	"**Flying When Sick:**\n" +
	"• 🤧 Mild cold/congestion: Generally OK\n" +
	"• 🤒 Fever/infectious disease: Wait until recovered\n" +
	"• 🏥 Recent surgery: Doctor's clearance needed\n" +
	"• 🤰 Pregnancy: Can fly until 36 weeks\n\n" +
	"**Medical Certificates Required:**\n" +
	"• ✈️ Recent surgery (within 10 days)\n" +
	"• 🏥 Serious medical condition\n" +
	"• 🤰 Pregnancy after 36 weeks\n" +
	"• 🧑‍⚕️ Traveling with medical equipment\n\n" +
	"**Carrying Medications:**\n" +
	"• ✅ Bring in original containers\n" +
	"• 📝 Keep prescription label visible\n" +
	"• 💊 Carry-on recommended (not checked)\n" +
	"• 💉 Needles: Medical certificate helpful\n" +
	"• 🧴 Liquids over 3.4oz: Medical exemption\n\n" +
	"**Medical Equipment:**\n" +
	"• 🦽 Wheelchairs: Free transport\n" +
	"• 🧑‍🦯 Assistive devices: No charge\n" +
	"• 💨 Portable oxygen: Advance notice required\n" +
	"• 💉 Diabetes supplies: Allowed in carry-on\n\n" +
	"**Oxygen & Respiratory:**\n" +
	"• ✅ FAA-approved portable oxygen concentrators\n" +
	"• ❌ Compressed gas cylinders not allowed\n" +
	"• 📞 Call 48 hours ahead: 1-800-JETBLUE\n\n" +
	"**Special Assistance:**\n" +
	"Request when booking:\n" +
	"• Wheelchair service\n" +
	"• Priority boarding\n" +
	"• Medical clearance\n" +
	"• Seating accommodations\n\n" +
	"**Need Help?**\n" +
	"📞 Special Assistance: 1-800-538-2583\n" +
	"🌐 jetblue.com/accessibility\n\n" +
	"Anything else I can help with?"

const prohibitedItemsResponse = "🚫 **Prohibited & Restricted Items**\n\n" +
	"**Absolutely Prohibited (Carry-on & Checked):**\n" +
	"• 💣 Explosives & fireworks\n" +
	"• 🧨 Flammable liquids/gases\n" +
	"• ☢️ Radioactive materials\n" +
	"• ☠️ Toxic/poisonous substances\n" +
	"• 🔫 Firearms (unless declared & unloaded)\n" +
	"• 🔪 Large knives & weapons\n\n" +
	"**Carry-On Restrictions:**\n" +
	"❌ **NOT Allowed in Carry-On:**\n" +
	"• Sharp objects over 4 inches\n" +
	"• Baseball bats, golf clubs\n" +
	"• Tools over 7 inches\n" +
	"• Self-defense sprays\n" +
	"• Liquids over 3.4oz (except medical)\n\n" +
	"**✅ Allowed in Checked Bags ONLY:**\n" +
	"• Tools & sporting equipment\n" +
	"• Liquids over 3.4oz\n" +
	"• Declared firearms (unloaded, locked)\n\n" +
	"**Special Items:**\n" +
	"• 🔋 Spare lithium batteries: Carry-on only\n" +
	"• 💻 Laptops/tablets: Carry-on recommended\n" +
	"• 🎮 Gaming devices: Allowed\n" +
	"• 📱 Phone chargers: Allowed\n" +
	"• 🪒 Razors: Disposable OK, straight razor NO\n\n" +
	"**Liquid Rules (3-1-1):**\n" +
	"• 3.4 ounces (100ml) per container\n" +
	"• 1 quart-sized clear bag\n" +
	"• 1 bag per passenger\n\n" +
	"**Exceptions:**\n" +
	"• Baby formula/food\n" +
	"• Medications\n" +
	"• Breast milk\n\n" +
	"**Smart Luggage:**\n" +
	"• 🔋 Battery must be removable\n" +
	"• Remove battery for checked bags\n\n" +
	"**When in Doubt:**\n" +
	"📞 Call: 1-800-JETBLUE\n" +
	"🌐 jetblue.com/prohibited-items\n" +
	"🛂 Check TSA.gov for complete list\n\n" +
	"Need help with anything else?"

const sportsMusicGearResponse = "🎸 **Sports Equipment & Musical Instruments**\n\n" +
	"**Musical Instruments:**\n\n" +
	"**Small Instruments (Carry-On):**\n" +
	"• 🎸 Guitar, violin, trumpet (if fits overhead)\n" +
	"• 📏 Max: 22\" x 14\" x 9\"\n" +
	"• 🎫 Counts as your carry-on item\n" +
	"• 💺 Can buy seat for larger instruments\n\n" +
	"**Large Instruments (Checked):**\n" +
	"• 🎹 Keyboard, cello, etc.\n" +
	"• 💵 Fee: $150 each way\n" +
	"• 📦 Must be in hard case\n" +
	"• 📏 Size limits apply\n\n" +
	"**Sports Equipment:**\n\n" +
	"**Checked Sports Gear ($50-75 each):**\n" +
	"• ⛳ Golf clubs (1 bag)\n" +
	"• 🎿 Skis & snowboards (1 set)\n" +
	"• 🏄 Surfboards (under 100 linear inches)\n" +
	"• 🚴 Bicycles (in box/bag)\n" +
	"• 🏒 Hockey equipment\n" +
	"• 🏊 Diving equipment\n\n" +
	"**Special Handling:**\n" +
	"• ⛳ Golf: Soft/hard case, clubs secured\n" +
	"• 🎿 Ski: Max 2 pairs per bag\n" +
	"• 🚴 Bike: Pedals removed, handlebars turned\n" +
	"• 🏄 Surfboard: Wrapped and padded\n\n" +
	"**Size & Weight:**\n" +
	"• 📏 Max 80 linear inches (L+W+H)\n" +
	"• ⚖️ Max 50 lbs (additional fees if heavier)\n" +
	"• 📦 Must be properly packaged\n\n" +
	"**Fees (One Way):**\n" +
	"• 🎸 Small instrument carry-on: Free\n" +
	"• 🎹 Large instrument checked: $150\n" +
	"• ⛳ Sports equipment (1st): $50\n" +
	"• ⛳ Sports equipment (2nd): $75\n\n" +
	"**Book Equipment Transport:**\n" +
	"• 📞 Call when booking: 1-800-JETBLUE\n" +
	"• 🌐 Or add during online check-in\n" +
	"• ⏰ At least 48 hours advance notice\n\n" +
	"**Protection Tips:**\n" +
	"• 📦 Use hard cases when possible\n" +
	"• 🏷️ Label with name & phone\n" +
	"• 📸 Take photos before checking\n" +
	"• 💼 Consider travel insurance\n\n" +
	"Need help booking a flight?"
