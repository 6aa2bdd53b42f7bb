package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// languageProfile carries every table the classifier and the prompt composer read.
// Product variants differ only in their profile.
type languageProfile struct {
	Name string `json:"name" validate:"required"`

	Instructions map[languageTag]string `json:"instructions" validate:"required"`
	Closings     map[languageTag]string `json:"closings" validate:"required"`

	RomanUrduMarkers    []string `json:"romanUrduMarkers" validate:"required,min=1,dive,required"`
	RomanSindhiMarkers  []string `json:"romanSindhiMarkers" validate:"required,min=1,dive,required"`
	RomanUrduKeywords   []string `json:"romanUrduKeywords" validate:"required,min=1,dive,required"`
	RomanSindhiKeywords []string `json:"romanSindhiKeywords" validate:"required,min=1,dive,required"`
}

var profileValidator = validator.New()

// loadProfile reads a profile from a JSON file. An empty path yields the built-in profile.
func loadProfile(path string) (languageProfile, error) {
	if path == "" {
		return defaultProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return languageProfile{}, fmt.Errorf("error reading profile: %w", err)
	}

	var p languageProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return languageProfile{}, fmt.Errorf("error decoding profile: %w", err)
	}

	if err := p.validate(); err != nil {
		return languageProfile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return p.normalize(), nil
}

func (p languageProfile) validate() error {
	if err := profileValidator.Struct(p); err != nil {
		return err
	}

	for _, tag := range languageTags {
		if strings.TrimSpace(p.Instructions[tag]) == "" {
			return fmt.Errorf("missing instruction for %q", tag)
		}
		if strings.TrimSpace(p.Closings[tag]) == "" {
			return fmt.Errorf("missing closing reminder for %q", tag)
		}
	}

	return nil
}

// normalize lower-cases every phrase and keyword, since matching runs against the
// lower-cased utterance.
func (p languageProfile) normalize() languageProfile {
	p.RomanUrduMarkers = lowerAll(p.RomanUrduMarkers)
	p.RomanSindhiMarkers = lowerAll(p.RomanSindhiMarkers)
	p.RomanUrduKeywords = lowerAll(p.RomanUrduKeywords)
	p.RomanSindhiKeywords = lowerAll(p.RomanSindhiKeywords)
	return p
}

func lowerAll(ss []string) []string {
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = strings.ToLower(s)
	}
	return res
}

func defaultProfile() languageProfile {
	p := languageProfile{
		Name: "assistant",
		Instructions: map[languageTag]string{
			langEnglish: `You are an AI Assistant Bot that can help with almost anything. Answer CONCISELY with a maximum of 2-3 sentences. Be direct and simple. Use 1-2 emojis maximum.

DO NOT WRITE LONG PARAGRAPHS. Keep answers short, simple, and to the point.

Even for complex questions, break down your answer into bullet points if needed, but keep the total response brief.`,

			langUrdu: `آپ ایک اے آئی اسسٹنٹ بوٹ ہیں جو تقریباً ہر چیز میں مدد کر سکتے ہیں۔ مختصر اور سیدھے جواب دیں، زیادہ سے زیادہ 2-3 جملوں میں۔ سادہ اور براہ راست بات کریں۔ زیادہ سے زیادہ 1-2 ایموجی استعمال کریں۔

لمبے پیراگراف نہ لکھیں۔ جوابات مختصر، آسان، اور مقصد تک محدود رکھیں۔

پیچیدہ سوالات کے لیے بھی، اگر ضروری ہو تو اپنے جواب کو بلٹ پوائنٹس میں تقسیم کریں، لیکن مجموعی جواب مختصر رکھیں۔`,

			langSindhi: `توهان هڪ اي آءِ اسسٽنٽ بوٽ آهيو جيڪو تقريبن هر شيءِ ۾ مدد ڪري سگهي ٿو. مختصر ۽ سڌا جواب ڏيو، وڌ ۾ وڌ 2-3 جملن ۾. سادو ۽ سڌو ڳالهايو. وڌ ۾ وڌ 1-2 ايموجي استعمال ڪريو.

ڊگها پيراگراف نه لکو. جواب مختصر، سادا ۽ مقصد تائين محدود رکو.

ڏکين سوالن لاءِ به، جيڪڏهن ضروري هجي ته پنهنجي جواب کي بليٽ پوائنٽس ۾ ورهايو، پر سمورو جواب مختصر رکو.`,

			langRomanUrdu: `Aap aik AI Assistant Bot hain jo taqreeban har cheez mein madad kar sakte hain. Mukhtasir aur seedhe jawab dein, ziada se ziada 2-3 jumlon mein. Sadah aur baraah rast baat karein. Ziada se ziada 1-2 emojis istemal karein.

Lambe paragraphs na likhein. Jawabaat mukhtasir, aasan, aur maqsad tak mehdood rakhein.

Pechida sawalaat ke liye bhi, agar zaroori ho to apne jawab ko bullet points mein taqseem karein, lekin majmui jawab mukhtasir rakhein.`,

			langRomanSindhi: `Tavheen hik AI Assistant Bot aahyo jeko taqreeban har shay men madad kare sagho tho. Mukhtasir te sudho jawab diyo, wadheek 2-3 jumlan men. Sadho te sudho galhayo. Wadheek 1-2 emojis istemal kayo.

Dhaga paragraphs na likho. Jawab mukhtasir, asaan, te maqsad taaen mehdood rakho.

Pechida sawalan lae bi, jeker zaroori huje ta panhjo jawab bullet points men warrhayo, par samuro jawab mukhtasir rakho.`,
		},
		Closings: map[languageTag]string{
			langEnglish:     "Keep your response very concise, direct, and short, responding in English. Remember that you can help with almost anything including writing code, stories, and providing various types of information.",
			langUrdu:        "اپنا جواب بہت مختصر، سیدھا اور چھوٹا رکھیں، اور اردو میں جواب دیں۔ یاد رکھیں کہ آپ کوڈ لکھنے، کہانیاں سنانے اور مختلف قسم کی معلومات فراہم کرنے سمیت تقریباً ہر چیز میں مدد کر سکتے ہیں۔",
			langSindhi:      "پنهنجو جواب تمام مختصر، سڌو ۽ ننڍو رکو، ۽ سنڌيءَ ۾ جواب ڏيو. ياد رکو ته توهان ڪوڊ لکڻ، ڪهاڻيون ٻڌائڻ ۽ مختلف قسم جي معلومات ڏيڻ سميت تقريبن هر شيءِ ۾ مدد ڪري سگهو ٿا.",
			langRomanUrdu:   "Apna jawab bohat mukhtasir, seedha aur chhota rakhein, aur Roman Urdu mein jawab dein. Yaad rakhein ke aap code likhne, kahaniyan sunane aur mukhtalif maloomat dene samet taqreeban har cheez mein madad kar sakte hain.",
			langRomanSindhi: "Panhjo jawab tamam mukhtasir, sudho te nandho rakho, aur Roman Sindhi men jawab diyo. Yaad rakho ta tavheen code likhan, kahaniyon budhayan aur mukhtalif maloomat dian samet taqreeban har shay men madad kare sagho tha.",
		},
		RomanUrduMarkers: []string{
			"kese ho", "kaise ho", "kia hal", "kia haal", "ap kese", "tum kaise",
			"kya kar", "kya ho", "kidher", "kahan", "kyun", "main", "mein",
			"theek", "acha", "han", "nahi", "bilkul",
		},
		RomanSindhiMarkers: []string{
			"cha hal", "keean ahes", "keean aahiyan", "tha kithay", "cha",
			"thiyo", "aahiyan", "pyaro", "khush", "achho", "budho",
		},
		RomanUrduKeywords: []string{
			"kese", "mein", "acha", "kyun", "tum", "kaise", "kya", "nahi", "ho", "thik", "hun",
			"ap", "main", "hai", "hain", "kar", "raha", "rahi", "rahe", "karna", "karein",
			"karo", "jao", "aao", "dena", "lena", "batao", "sunao", "dikhao", "samjhao",
			"theek", "acha", "bura", "mushkil", "asan", "koshish", "mehnat", "waqt", "din",
			"raat", "subah", "shaam", "dopahar", "hamesha", "kabhi", "nahin", "nahi",
			"haan", "jee", "bilkul", "zaroor", "shayad", "matlab", "lekin", "magar",
			"aur", "ya", "per", "phir", "dobara", "kab", "kaisa", "kesi", "kuch",
		},
		RomanSindhiKeywords: []string{
			"cha", "hal", "aa", "tu", "budha", "theek", "aahiyan", "qurab", "mahrabni", "shukar", "allah",
			"ahes", "aahiyan", "keean", "kaise", "mitha", "thoda", "ganeyo", "bhalaa", "savere",
			"khalaan", "budho", "achho", "kerao", "kario", "deo", "cho", "chhe", "chha", "tha",
			"tho", "sahi", "kharab", "mushkil", "asaan", "waqt", "dinh", "raat", "subh", "shaam",
			"hamesh", "kadhen", "naa", "haa", "zaroor", "shayad", "matlab", "pan", "mokalyo",
			"acho", "suthaa", "pyaaro", "mehrbani", "khush", "aaeindah", "akhir",
		},
	}

	return p.normalize()
}
