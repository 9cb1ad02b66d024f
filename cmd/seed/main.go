package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"profitum/config"
	"profitum/internal/model"
	"profitum/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	questionRepo := repository.NewQuestionRepo(db)

	if err := questionRepo.ReplaceAll(ctx, questionnaire()); err != nil {
		log.Fatalf("Failed to seed questionnaire: %v", err)
	}

	log.Printf("Seeded %d questions", len(questionnaire()))
}

// questionnaire returns the simulator catalog. Phase 1 profiles the company
// for every product; later phases drill into TICPE specifics and are gated on
// owning professional vehicles.
func questionnaire() []model.Question {
	dependsOnVehicles := &model.Condition{DependsOn: "TICPE_003", Answer: "Oui"}

	return []model.Question{
		// Phase 1 : Informations Générales
		{
			ID:    "GENERAL_001",
			Text:  "Dans quel secteur d'activité exercez-vous principalement ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 1, Order: 1,
			Options: []string{
				"Transport routier de marchandises",
				"Transport routier de voyageurs",
				"Transport maritime",
				"Transport aérien",
				"Taxi / VTC",
				"BTP / Travaux publics",
				"Terrassement",
				"Assainissement",
				"Secteur Agricole",
				"Commerce",
				"Industrie",
				"Services",
				"Construction",
				"Autre",
			},
			Required:       true,
			TargetProducts: []string{"TICPE", "URSSAF", "CIR", "FONCIER", "DFS"},
		},
		{
			ID:    "GENERAL_002",
			Text:  "Quel est votre chiffre d'affaires annuel ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 1, Order: 2,
			Options: []string{
				"Moins de 100 000€",
				"100 000€ - 500 000€",
				"500 000€ - 1 000 000€",
				"1 000 000€ - 5 000 000€",
				"Plus de 5 000 000€",
			},
			Required:       true,
			TargetProducts: []string{"TICPE", "URSSAF", "CIR", "FONCIER"},
		},
		{
			ID:             "GENERAL_003",
			Text:           "Combien de salariés compte votre entreprise ?",
			Type:           model.QuestionTypeNumber,
			Phase:          1,
			Order:          3,
			Required:       true,
			TargetProducts: []string{"URSSAF", "CIR", "DFS"},
		},
		{
			ID:             "GENERAL_004",
			Text:           "Êtes-vous propriétaire de vos locaux professionnels ?",
			Type:           model.QuestionTypeSingleChoice,
			Phase:          1,
			Order:          4,
			Options:        []string{"Oui", "Non"},
			Required:       true,
			TargetProducts: []string{"FONCIER"},
		},
		{
			ID:             "GENERAL_005",
			Text:           "Menez-vous des activités de recherche et développement ?",
			Type:           model.QuestionTypeSingleChoice,
			Phase:          1,
			Order:          5,
			Options:        []string{"Oui", "Non"},
			Required:       true,
			TargetProducts: []string{"CIR"},
		},

		// Phase 2 : Véhicules Professionnels
		{
			ID:             "TICPE_003",
			Text:           "Possédez-vous des véhicules professionnels ?",
			Type:           model.QuestionTypeSingleChoice,
			Phase:          2,
			Order:          1,
			Options:        []string{"Oui", "Non"},
			Required:       true,
			TargetProducts: []string{"TICPE"},
		},
		{
			ID:    "TICPE_004",
			Text:  "Combien de véhicules utilisez-vous pour votre activité ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 2, Order: 2,
			Options: []string{
				"1 à 3 véhicules",
				"4 à 10 véhicules",
				"11 à 25 véhicules",
				"Plus de 25 véhicules",
			},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},
		{
			ID:    "TICPE_005",
			Text:  "Quels types de véhicules utilisez-vous ?",
			Type:  model.QuestionTypeMultiChoice,
			Phase: 2, Order: 3,
			Options: []string{
				"Camions de plus de 7,5 tonnes",
				"Camions de 3,5 à 7,5 tonnes",
				"Véhicules utilitaires légers",
				"Engins de chantier",
				"Véhicules de service",
				"Véhicules de fonction",
				"Tracteurs agricoles",
				"Autre",
			},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},
		{
			ID:    "TICPE_006",
			Text:  "Vos véhicules sont-ils équipés de chronotachygraphe ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 2, Order: 4,
			Options:        []string{"Oui, tous", "Oui, certains", "Non"},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},

		// Phase 3 : Consommation Carburant
		{
			ID:    "TICPE_007",
			Text:  "Quelle est votre consommation annuelle de carburant ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 3, Order: 1,
			Options: []string{
				"Moins de 5 000 litres",
				"5 000 à 15 000 litres",
				"15 000 à 50 000 litres",
				"Plus de 50 000 litres",
			},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},
		{
			ID:    "TICPE_008",
			Text:  "Quels types de carburant utilisez-vous ?",
			Type:  model.QuestionTypeMultiChoice,
			Phase: 3, Order: 2,
			Options: []string{
				"Gazole professionnel",
				"Gazole Non Routier (GNR)",
				"Essence",
				"GPL",
				"Électricité",
				"Autre",
			},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},
		{
			ID:    "TICPE_009",
			Text:  "Avez-vous conservé vos factures de carburant des 3 dernières années ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 3, Order: 3,
			Options: []string{
				"Oui, 3 dernières années complètes",
				"Oui, 2 dernières années",
				"Oui, 1 dernière année",
				"Partiellement",
				"Non",
			},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},
		{
			ID:             "TICPE_012",
			Text:           "Si vous la connaissez, indiquez votre consommation annuelle précise (en litres)",
			Type:           model.QuestionTypeNumber,
			Phase:          3,
			Order:          4,
			Required:       false,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},

		// Phase 4 : Usage Professionnel
		{
			ID:    "TICPE_010",
			Text:  "Quel est le pourcentage d'usage professionnel de vos véhicules ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 4, Order: 1,
			Options: []string{
				"100% professionnel",
				"80-99% professionnel",
				"60-79% professionnel",
				"Moins de 60% professionnel",
			},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},
		{
			ID:    "TICPE_011",
			Text:  "Quel est le kilométrage annuel moyen par véhicule ?",
			Type:  model.QuestionTypeSingleChoice,
			Phase: 4, Order: 2,
			Options: []string{
				"Moins de 10 000 km",
				"10 000 à 30 000 km",
				"30 000 à 60 000 km",
				"Plus de 60 000 km",
			},
			Required:       true,
			TargetProducts: []string{"TICPE"},
			Condition:      dependsOnVehicles,
		},
	}
}
